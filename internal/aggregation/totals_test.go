package aggregation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"burgerpos/internal/aggregation"
	"burgerpos/internal/models"
)

func order(id string, ts time.Time, method models.PaymentMethod, fee string, items ...models.OrderItem) models.Order {
	return models.Order{
		ID:            id,
		Timestamp:     ts,
		Items:         items,
		DeliveryFee:   dec(fee),
		PaymentMethod: method,
	}
}

func item(name, price string, qty int, addOns ...models.AddOn) models.OrderItem {
	return models.OrderItem{Item: line("l-"+name, name, price, addOns...), Quantity: qty}
}

func TestOrderTotal_ExactToTheCent(t *testing.T) {
	o := order("1", time.Now(), models.PaymentPIX, "0.10",
		item("Burger", "0.10", 3, models.AddOn{Name: "Cheese", Price: dec("0.20")}),
		item("Soda", "0.70", 10),
	)

	// 0.10 + 3*(0.10+0.20) + 10*0.70
	assert.Equal(t, "8.00", aggregation.OrderTotal(o).StringFixed(2))
	assert.True(t, dec("8").Equal(aggregation.OrderTotal(o)))
}

func TestOrderTotal_DeliveryFeeOnly(t *testing.T) {
	o := order("1", time.Now(), models.PaymentCash, "7.50")
	assert.True(t, dec("7.5").Equal(aggregation.OrderTotal(o)))
}

func TestChangeDue(t *testing.T) {
	assert.True(t, dec("5.50").Equal(aggregation.ChangeDue(dec("50"), dec("44.50"))))
	assert.True(t, dec("-4.50").Equal(aggregation.ChangeDue(dec("40"), dec("44.50"))))
}

func threeOrdersThisMonth(now time.Time) []models.Order {
	return []models.Order{
		order("a", now.Add(-time.Hour), models.PaymentCash, "0", item("Burger", "10.00", 1)),
		order("b", now.Add(-2*time.Hour), models.PaymentPIX, "5.50", item("Burger", "10.00", 2)),
		order("c", now.Add(-3*time.Hour), models.PaymentCard, "0", item("Soda", "14.49", 1)),
	}
}

func TestRevenueScenario(t *testing.T) {
	now := time.Date(2024, time.March, 20, 18, 0, 0, 0, time.UTC)
	orders := threeOrdersThisMonth(now)
	orders = append(orders, order("old", time.Date(2024, time.February, 28, 12, 0, 0, 0, time.UTC), models.PaymentPIX, "0", item("Burger", "99", 1)))

	assert.Equal(t, "49.99", aggregation.MonthToDateRevenue(orders[:3], now).StringFixed(2))
	assert.Equal(t, "49.99", aggregation.MonthToDateRevenue(orders, now).StringFixed(2))

	byMethod := aggregation.RevenueByPaymentMethod(orders[:3])
	assert.Len(t, byMethod, 3)
	assert.Equal(t, "10.00", byMethod[models.PaymentCash].StringFixed(2))
	assert.Equal(t, "25.50", byMethod[models.PaymentPIX].StringFixed(2))
	assert.Equal(t, "14.49", byMethod[models.PaymentCard].StringFixed(2))
}

func TestRevenueByPaymentMethod_UnknownGoesToOther(t *testing.T) {
	now := time.Now()
	orders := []models.Order{
		order("a", now, "Voucher", "0", item("Burger", "10", 1)),
		order("b", now, "Dinheiro", "0", item("Burger", "10", 1)),
		order("c", now, "", "0", item("Burger", "5", 1)),
	}

	byMethod := aggregation.RevenueByPaymentMethod(orders)

	assert.True(t, dec("15").Equal(byMethod[models.PaymentOther]))
	assert.True(t, dec("10").Equal(byMethod[models.PaymentCash]))
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, time.March, 20, 18, 0, 0, 0, time.UTC)
	s := aggregation.Summarize(threeOrdersThisMonth(now))
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, "49.99", s.Revenue.StringFixed(2))

	empty := aggregation.Summarize(nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, decimal.Zero.Equal(empty.Revenue))
}
