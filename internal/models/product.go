package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category groups products on the sales screen.
type Category string

const (
	CategoryBurgers Category = "Burgers"
	CategoryFries   Category = "Fries"
	CategoryDrinks  Category = "Drinks"
	CategoryExtras  Category = "Extras"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryBurgers, CategoryFries, CategoryDrinks, CategoryExtras}

// legacyCategories maps labels written by older catalog screens.
var legacyCategories = map[string]Category{
	"hamburgueres": CategoryBurgers,
	"hambúrgueres": CategoryBurgers,
	"batatas":      CategoryFries,
	"bebidas":      CategoryDrinks,
	"adicionais":   CategoryExtras,
}

// ParseCategory resolves a stored or user-supplied label into a Category.
// The second return value is false when the label is unknown.
func ParseCategory(label string) (Category, bool) {
	label = strings.TrimSpace(label)
	for _, c := range Categories {
		if strings.EqualFold(label, string(c)) {
			return c, true
		}
	}
	if c, ok := legacyCategories[strings.ToLower(label)]; ok {
		return c, true
	}
	return "", false
}

// Rank returns the display position of the category, unknown categories last.
func (c Category) Rank() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return len(Categories)
}

// Product represents a catalog entry. Name is unique within the catalog.
type Product struct {
	Name     string          `json:"name" validate:"required,max=100"`
	Category Category        `json:"category" validate:"required,oneof=Burgers Fries Drinks Extras"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
}

// SameIdentity reports whether p and other share the (name, price, category) tuple
// used to match catalog edits and deletions.
func (p Product) SameIdentity(other Product) bool {
	return p.Name == other.Name && p.Category == other.Category && p.Price.Equal(other.Price)
}
