package aggregation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"burgerpos/internal/models"
)

// ValueMode chooses what a chart bucket accumulates.
type ValueMode string

const (
	// ModeCount counts orders.
	ModeCount ValueMode = "count"
	// ModeValue sums order totals.
	ModeValue ValueMode = "value"
	// ModeUnits sums item quantities.
	ModeUnits ValueMode = "units"
)

// ParseValueMode defaults to ModeCount for an empty label.
func ParseValueMode(label string) (ValueMode, error) {
	switch m := ValueMode(strings.ToLower(strings.TrimSpace(label))); m {
	case "":
		return ModeCount, nil
	case ModeCount, ModeValue, ModeUnits:
		return m, nil
	}
	return "", fmt.Errorf("unknown value mode %q", label)
}

// Bucket is one bar of a chart.
type Bucket struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// ItemSales is how many units of a product were sold.
type ItemSales struct {
	Name  string `json:"name"`
	Units int    `json:"units"`
}

// BucketSalesByMonth always returns twelve buckets, January first. Orders are placed by
// the month of their timestamp in loc regardless of year; a nil loc means UTC.
func BucketSalesByMonth(orders []models.Order, mode ValueMode, loc *time.Location) []Bucket {
	if loc == nil {
		loc = time.UTC
	}
	buckets := make([]Bucket, 12)
	for i := range buckets {
		buckets[i] = Bucket{Label: MonthName(time.Month(i + 1)), Value: decimal.Zero}
	}
	for _, o := range orders {
		i := int(o.Timestamp.In(loc).Month()) - 1
		buckets[i].Value = buckets[i].Value.Add(contribution(o, mode))
	}
	return buckets
}

// BucketSalesByWeekday returns seven buckets, Sunday first, covering only orders from the
// current Monday-based week of now.
func BucketSalesByWeekday(orders []models.Order, mode ValueMode, now time.Time) []Bucket {
	buckets := make([]Bucket, 7)
	for i := range buckets {
		buckets[i] = Bucket{Label: WeekdayName(time.Weekday(i)), Value: decimal.Zero}
	}
	start := WeekStart(now)
	end := start.AddDate(0, 0, 7)
	for _, o := range orders {
		ts := o.Timestamp.In(now.Location())
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		i := int(ts.Weekday())
		buckets[i].Value = buckets[i].Value.Add(contribution(o, mode))
	}
	return buckets
}

// TopSellingItems sums quantities per product name across all orders, ignoring add-ons.
// Every product sold is returned, in the order it was first seen; callers rank or truncate.
func TopSellingItems(orders []models.Order) []ItemSales {
	out := []ItemSales{}
	index := make(map[string]int)
	for _, o := range orders {
		for _, it := range o.Items {
			i, ok := index[it.Item.Name]
			if !ok {
				i = len(out)
				index[it.Item.Name] = i
				out = append(out, ItemSales{Name: it.Item.Name})
			}
			out[i].Units += it.Quantity
		}
	}
	return out
}

func contribution(o models.Order, mode ValueMode) decimal.Decimal {
	switch mode {
	case ModeValue:
		return OrderTotal(o)
	case ModeUnits:
		units := 0
		for _, it := range o.Items {
			units += it.Quantity
		}
		return decimal.NewFromInt(int64(units))
	default:
		return decimal.NewFromInt(1)
	}
}
