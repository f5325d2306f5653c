package repositories

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"burgerpos/internal/models"
)

// Records written by the first version of the shop app use Portuguese field names.
// They are read as-is and rewritten in the current shape on the next save.

type legacyAddOn struct {
	Nome  string          `json:"nome"`
	Valor decimal.Decimal `json:"valor"`
}

type legacyProduct struct {
	ID         string          `json:"id"`
	Nome       string          `json:"nome"`
	Categoria  string          `json:"categoria"`
	Valor      decimal.Decimal `json:"valor"`
	Adicionais []legacyAddOn   `json:"adicionais"`
}

type legacyOrderItem struct {
	Item       legacyProduct `json:"item"`
	Quantidade int           `json:"quantidade"`
}

type legacyOrder struct {
	ID      string    `json:"id"`
	Data    time.Time `json:"data"`
	Cliente struct {
		Nome     string `json:"nome"`
		Endereco string `json:"endereco"`
	} `json:"cliente"`
	Produtos         []legacyOrderItem `json:"produtos"`
	ValorTeleEntrega decimal.Decimal   `json:"valorTeleEntrega"`
	FormaPagamento   string            `json:"formaPagamento"`
	Observacao       string            `json:"observacao"`
	Troco            *decimal.Decimal  `json:"troco"`
}

// hasField reports whether raw is a JSON object carrying key.
func hasField(raw json.RawMessage, key string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	_, ok := fields[key]
	return ok
}

func decodeProduct(raw json.RawMessage, p *models.Product) error {
	if !hasField(raw, "nome") {
		return json.Unmarshal(raw, p)
	}
	var legacy legacyProduct
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return err
	}
	*p = models.Product{
		Name:     legacy.Nome,
		Category: models.Category(legacy.Categoria),
		Price:    legacy.Valor,
	}
	return nil
}

func decodeOrder(raw json.RawMessage, o *models.Order) error {
	if !hasField(raw, "produtos") {
		return json.Unmarshal(raw, o)
	}
	var legacy legacyOrder
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return err
	}

	items := make([]models.OrderItem, 0, len(legacy.Produtos))
	for _, p := range legacy.Produtos {
		addOns := make([]models.AddOn, 0, len(p.Item.Adicionais))
		for _, a := range p.Item.Adicionais {
			addOns = append(addOns, models.AddOn{Name: a.Nome, Price: a.Valor})
		}
		items = append(items, models.OrderItem{
			Item: models.CartLine{
				ID:       p.Item.ID,
				Name:     p.Item.Nome,
				Category: models.Category(p.Item.Categoria),
				Price:    p.Item.Valor,
				AddOns:   addOns,
			},
			Quantity: p.Quantidade,
		})
	}

	*o = models.Order{
		ID:            legacy.ID,
		Timestamp:     legacy.Data,
		Customer:      models.Customer{Name: legacy.Cliente.Nome, Address: legacy.Cliente.Endereco},
		Items:         items,
		DeliveryFee:   legacy.ValorTeleEntrega,
		PaymentMethod: models.PaymentMethod(legacy.FormaPagamento),
		Note:          legacy.Observacao,
		ChangeFor:     legacy.Troco,
	}
	return nil
}
