package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddOn is an extra attached to a single cart line ("adicional").
type AddOn struct {
	Name  string          `json:"name" validate:"required,max=100"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
}

// CartLine is one add-to-cart action. Several lines may share a product name.
type CartLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name" validate:"required"`
	Category Category        `json:"category"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	AddOns   []AddOn         `json:"add_ons" validate:"dive"`
}

// Cart is an open sale ("venda") that has not been checked out yet.
type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
