package aggregation

import (
	"time"

	"github.com/shopspring/decimal"

	"burgerpos/internal/models"
)

// Summary is the header of the order history: how many orders and how much they add up to.
type Summary struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// OrderTotal returns deliveryFee + Σ quantity × (price + Σ add-on prices).
func OrderTotal(order models.Order) decimal.Decimal {
	total := order.DeliveryFee
	for _, it := range order.Items {
		total = total.Add(LineUnitPrice(it.Item).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// ChangeDue is the cash to hand back. A negative result means the customer underpaid;
// callers decide whether that is acceptable.
func ChangeDue(tendered, orderTotal decimal.Decimal) decimal.Decimal {
	return tendered.Sub(orderTotal)
}

// Summarize counts orders and sums their totals.
func Summarize(orders []models.Order) Summary {
	s := Summary{Revenue: decimal.Zero}
	for _, o := range orders {
		s.Count++
		s.Revenue = s.Revenue.Add(OrderTotal(o))
	}
	return s
}

// RevenueByPaymentMethod sums order totals per payment method. Labels other than PIX, Card
// and Cash are reported under Other. Methods without orders are absent from the result.
func RevenueByPaymentMethod(orders []models.Order) map[models.PaymentMethod]decimal.Decimal {
	out := make(map[models.PaymentMethod]decimal.Decimal)
	for _, o := range orders {
		m := models.NormalizePaymentMethod(string(o.PaymentMethod))
		out[m] = out[m].Add(OrderTotal(o))
	}
	return out
}

// MonthToDateRevenue sums totals of orders placed in the same month and year as now,
// evaluated in now's location.
func MonthToDateRevenue(orders []models.Order, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		ts := o.Timestamp.In(now.Location())
		if ts.Year() == now.Year() && ts.Month() == now.Month() {
			total = total.Add(OrderTotal(o))
		}
	}
	return total
}
