// Package aggregation holds the pure computations behind the sales, history and analytics
// screens. Nothing here performs I/O or keeps state between calls, and no function mutates
// the slices it receives.
package aggregation

import (
	"errors"

	"github.com/shopspring/decimal"

	"burgerpos/internal/models"
)

// ErrLineNotFound is returned when a cart line id does not exist in the cart.
var ErrLineNotFound = errors.New("cart line not found")

// AddToCart appends a new line for product. Every call creates a separate line, even for a
// product already in the cart.
func AddToCart(lines []models.CartLine, product models.Product, lineID string) []models.CartLine {
	out := cloneLines(lines)
	return append(out, models.CartLine{
		ID:       lineID,
		Name:     product.Name,
		Category: product.Category,
		Price:    product.Price,
		AddOns:   []models.AddOn{},
	})
}

// RemoveFromCart drops the last line whose name matches. The cart is returned unchanged
// (as a copy) when nothing matches.
func RemoveFromCart(lines []models.CartLine, name string) ([]models.CartLine, bool) {
	out := cloneLines(lines)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Name == name {
			return append(out[:i], out[i+1:]...), true
		}
	}
	return out, false
}

// AttachAddOn appends addOn to the line identified by lineID.
func AttachAddOn(lines []models.CartLine, lineID string, addOn models.AddOn) ([]models.CartLine, error) {
	out := cloneLines(lines)
	for i := range out {
		if out[i].ID == lineID {
			out[i].AddOns = append(out[i].AddOns, addOn)
			return out, nil
		}
	}
	return nil, ErrLineNotFound
}

// CartQuantities counts lines per product name, which is what the product buttons display.
func CartQuantities(lines []models.CartLine) map[string]int {
	counts := make(map[string]int, len(lines))
	for _, l := range lines {
		counts[l.Name]++
	}
	return counts
}

// CartTotal is the running total shown while the cart is being built.
func CartTotal(lines []models.CartLine, deliveryFee decimal.Decimal) decimal.Decimal {
	total := deliveryFee
	for _, l := range lines {
		total = total.Add(LineUnitPrice(l))
	}
	return total
}

// GroupCartLines folds lines with the same name and the same add-ons (same names and prices,
// same order) into one item. Items keep the order in which each group first appeared.
func GroupCartLines(lines []models.CartLine) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		found := false
		for i := range items {
			if sameLine(items[i].Item, l) {
				items[i].Quantity++
				found = true
				break
			}
		}
		if !found {
			items = append(items, models.OrderItem{Item: cloneLine(l), Quantity: 1})
		}
	}
	return items
}

// LineUnitPrice is the product price plus every add-on on the line.
func LineUnitPrice(l models.CartLine) decimal.Decimal {
	price := l.Price
	for _, a := range l.AddOns {
		price = price.Add(a.Price)
	}
	return price
}

func sameLine(a, b models.CartLine) bool {
	if a.Name != b.Name || len(a.AddOns) != len(b.AddOns) {
		return false
	}
	for i := range a.AddOns {
		if a.AddOns[i].Name != b.AddOns[i].Name || !a.AddOns[i].Price.Equal(b.AddOns[i].Price) {
			return false
		}
	}
	return true
}

func cloneLine(l models.CartLine) models.CartLine {
	addOns := make([]models.AddOn, len(l.AddOns))
	copy(addOns, l.AddOns)
	l.AddOns = addOns
	return l
}

func cloneLines(lines []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, len(lines), len(lines)+1)
	for i, l := range lines {
		out[i] = cloneLine(l)
	}
	return out
}
