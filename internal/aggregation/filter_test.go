package aggregation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"burgerpos/internal/aggregation"
	"burgerpos/internal/models"
)

func ids(orders []models.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func at(y int, m time.Month, d, h, min, s int) time.Time {
	return time.Date(y, m, d, h, min, s, 0, time.UTC)
}

func stamped(id string, ts time.Time) models.Order {
	return order(id, ts, models.PaymentPIX, "0", item("Burger", "10", 1))
}

func TestFilterToday_AcrossDayBoundary(t *testing.T) {
	orders := []models.Order{
		stamped("prev-late", at(2024, time.May, 14, 23, 59, 59)),
		stamped("midnight", at(2024, time.May, 15, 0, 0, 0)),
		stamped("early", at(2024, time.May, 15, 0, 0, 1)),
		stamped("late", at(2024, time.May, 15, 23, 59, 59)),
		stamped("future", at(2024, time.May, 16, 0, 0, 0)),
	}

	got, err := aggregation.FilterOrdersByRange(orders, aggregation.RangeQuery{Kind: aggregation.RangeToday}, at(2024, time.May, 15, 23, 59, 59))
	require.NoError(t, err)
	assert.Equal(t, []string{"midnight", "early", "late"}, ids(got))

	got, err = aggregation.FilterOrdersByRange(orders, aggregation.RangeQuery{Kind: aggregation.RangeToday}, at(2024, time.May, 15, 0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"midnight", "early"}, ids(got))
}

func TestFilterYesterday(t *testing.T) {
	now := at(2024, time.March, 1, 10, 0, 0)
	orders := []models.Order{
		stamped("before", at(2024, time.February, 28, 23, 59, 59)),
		stamped("start", at(2024, time.February, 29, 0, 0, 0)),
		stamped("end", time.Date(2024, time.February, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC)),
		stamped("today", at(2024, time.March, 1, 0, 0, 0)),
	}

	got, err := aggregation.FilterOrdersByRange(orders, aggregation.RangeQuery{Kind: aggregation.RangeYesterday}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "end"}, ids(got))
}

func TestWeekStart_MondayAnchored(t *testing.T) {
	// 2024-06-16 is a Sunday: the week started on Monday 2024-06-10.
	assert.Equal(t, at(2024, time.June, 10, 0, 0, 0), aggregation.WeekStart(at(2024, time.June, 16, 20, 0, 0)))
	assert.Equal(t, at(2024, time.June, 10, 0, 0, 0), aggregation.WeekStart(at(2024, time.June, 10, 8, 0, 0)))
	assert.Equal(t, at(2024, time.June, 10, 0, 0, 0), aggregation.WeekStart(at(2024, time.June, 12, 8, 0, 0)))
	// Across a month boundary.
	assert.Equal(t, at(2024, time.April, 29, 0, 0, 0), aggregation.WeekStart(at(2024, time.May, 2, 8, 0, 0)))
}

func TestFilterWeekMonthYear(t *testing.T) {
	now := at(2024, time.June, 16, 20, 0, 0)
	orders := []models.Order{
		stamped("last-year", at(2023, time.December, 31, 12, 0, 0)),
		stamped("january", at(2024, time.January, 1, 0, 0, 0)),
		stamped("may", at(2024, time.May, 31, 12, 0, 0)),
		stamped("june-first", at(2024, time.June, 1, 0, 0, 0)),
		stamped("last-sunday", at(2024, time.June, 9, 23, 0, 0)),
		stamped("monday", at(2024, time.June, 10, 0, 0, 0)),
		stamped("sunday", at(2024, time.June, 16, 19, 0, 0)),
	}

	week, err := aggregation.FilterOrdersByRange(orders, aggregation.RangeQuery{Kind: aggregation.RangeWeek}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"monday", "sunday"}, ids(week))

	month, err := aggregation.FilterOrdersByRange(orders, aggregation.RangeQuery{Kind: aggregation.RangeMonth}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"june-first", "last-sunday", "monday", "sunday"}, ids(month))

	year, err := aggregation.FilterOrdersByRange(orders, aggregation.RangeQuery{Kind: aggregation.RangeYear}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"january", "may", "june-first", "last-sunday", "monday", "sunday"}, ids(year))
}

func TestFilterCustom(t *testing.T) {
	now := at(2024, time.June, 16, 20, 0, 0)
	orders := []models.Order{
		stamped("before", at(2024, time.May, 31, 23, 59, 59)),
		stamped("first", at(2024, time.June, 1, 0, 0, 0)),
		stamped("last", at(2024, time.June, 3, 23, 59, 59)),
		stamped("after", at(2024, time.June, 4, 0, 0, 0)),
	}

	got, err := aggregation.FilterOrdersByRange(orders, aggregation.RangeQuery{Kind: aggregation.RangeCustom, Start: "01/06/2024", End: "03/06/2024"}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "last"}, ids(got))
}

func TestFilterCustom_InvalidInputIsRejected(t *testing.T) {
	now := at(2024, time.June, 16, 20, 0, 0)
	orders := []models.Order{stamped("a", now)}

	cases := []aggregation.RangeQuery{
		{Kind: aggregation.RangeCustom},
		{Kind: aggregation.RangeCustom, Start: "01/06/2024"},
		{Kind: aggregation.RangeCustom, Start: "2024-06-01", End: "03/06/2024"},
		{Kind: aggregation.RangeCustom, Start: "01/06/2024", End: "31/02/2024"},
		{Kind: aggregation.RangeCustom, Start: "05/06/2024", End: "03/06/2024"},
		{Kind: "fortnight"},
	}
	for _, q := range cases {
		got, err := aggregation.FilterOrdersByRange(orders, q, now)
		assert.ErrorIs(t, err, aggregation.ErrInvalidDateRange, "query %+v", q)
		assert.Nil(t, got)
	}
}

func TestFilterOrdersByRange_EmptyInput(t *testing.T) {
	got, err := aggregation.FilterOrdersByRange(nil, aggregation.RangeQuery{Kind: aggregation.RangeYear}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseRangeKind(t *testing.T) {
	cases := map[string]aggregation.RangeKind{
		"":          aggregation.RangeToday,
		"Today":     aggregation.RangeToday,
		"Hoje":      aggregation.RangeToday,
		"Ontem":     aggregation.RangeYesterday,
		"Semana":    aggregation.RangeWeek,
		"Mês":       aggregation.RangeMonth,
		"ano":       aggregation.RangeYear,
		"Periodo":   aggregation.RangeCustom,
		"custom":    aggregation.RangeCustom,
		"yesterday": aggregation.RangeYesterday,
	}
	for label, want := range cases {
		got, err := aggregation.ParseRangeKind(label)
		require.NoError(t, err, label)
		assert.Equal(t, want, got, label)
	}

	_, err := aggregation.ParseRangeKind("decade")
	assert.ErrorIs(t, err, aggregation.ErrInvalidDateRange)
}
