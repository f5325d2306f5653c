package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer paid for an order.
type PaymentMethod string

const (
	PaymentPIX   PaymentMethod = "PIX"
	PaymentCard  PaymentMethod = "Card"
	PaymentCash  PaymentMethod = "Cash"
	PaymentOther PaymentMethod = "Other"
)

var legacyPaymentMethods = map[string]PaymentMethod{
	"pix":      PaymentPIX,
	"cartão":   PaymentCard,
	"cartao":   PaymentCard,
	"crédito":  PaymentCard,
	"débito":   PaymentCard,
	"dinheiro": PaymentCash,
	"outro":    PaymentOther,
}

// NormalizePaymentMethod maps any label onto PIX, Card or Cash, and everything else onto Other.
func NormalizePaymentMethod(label string) PaymentMethod {
	label = strings.TrimSpace(label)
	for _, m := range []PaymentMethod{PaymentPIX, PaymentCard, PaymentCash} {
		if strings.EqualFold(label, string(m)) {
			return m
		}
	}
	if m, ok := legacyPaymentMethods[strings.ToLower(label)]; ok {
		return m
	}
	return PaymentOther
}

// Customer identifies who the order is for.
type Customer struct {
	Name    string `json:"name" validate:"max=100"`
	Address string `json:"address" validate:"max=255"`
}

// OrderItem is a snapshot of a cart line together with how many identical lines were grouped.
type OrderItem struct {
	Item     CartLine `json:"item"`
	Quantity int      `json:"quantity" validate:"gt=0"`
}

// Order represents a finalized sale ("pedido").
type Order struct {
	ID            string           `json:"id" validate:"required"`
	Timestamp     time.Time        `json:"timestamp"`
	Customer      Customer         `json:"customer"`
	Items         []OrderItem      `json:"items" validate:"required,min=1,dive"`
	DeliveryFee   decimal.Decimal  `json:"delivery_fee" validate:"gte=0"`
	PaymentMethod PaymentMethod    `json:"payment_method" validate:"required"`
	Note          string           `json:"note,omitempty"`
	ChangeFor     *decimal.Decimal `json:"change_for,omitempty"`
}
