package aggregation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"burgerpos/internal/models"
)

// ErrInvalidDateRange is returned when a custom range is missing a bound, cannot be parsed,
// or ends before it starts.
var ErrInvalidDateRange = errors.New("invalid date range")

// DateLayout is the DD/MM/YYYY format accepted for custom ranges.
const DateLayout = "02/01/2006"

// RangeKind selects the window used by FilterOrdersByRange.
type RangeKind string

const (
	RangeToday     RangeKind = "today"
	RangeYesterday RangeKind = "yesterday"
	RangeWeek      RangeKind = "week"
	RangeMonth     RangeKind = "month"
	RangeYear      RangeKind = "year"
	RangeCustom    RangeKind = "custom"
)

var rangeAliases = map[string]RangeKind{
	"hoje":    RangeToday,
	"ontem":   RangeYesterday,
	"semana":  RangeWeek,
	"mês":     RangeMonth,
	"mes":     RangeMonth,
	"ano":     RangeYear,
	"periodo": RangeCustom,
	"período": RangeCustom,
}

// ParseRangeKind accepts the English kinds and the labels used by the history screen.
// An empty label means today.
func ParseRangeKind(label string) (RangeKind, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return RangeToday, nil
	}
	switch k := RangeKind(label); k {
	case RangeToday, RangeYesterday, RangeWeek, RangeMonth, RangeYear, RangeCustom:
		return k, nil
	}
	if k, ok := rangeAliases[label]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown range %q", ErrInvalidDateRange, label)
}

// RangeQuery describes a history filter. Start and End are DD/MM/YYYY and only used by RangeCustom.
type RangeQuery struct {
	Kind  RangeKind
	Start string
	End   string
}

// Window resolves q into an inclusive [start, end] interval anchored at now.
func Window(q RangeQuery, now time.Time) (time.Time, time.Time, error) {
	loc := now.Location()
	today := midnight(now)
	switch q.Kind {
	case RangeToday, "":
		return today, now, nil
	case RangeYesterday:
		y := today.AddDate(0, 0, -1)
		return y, endOfDay(y), nil
	case RangeWeek:
		return WeekStart(now), now, nil
	case RangeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), now, nil
	case RangeYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc), now, nil
	case RangeCustom:
		if q.Start == "" || q.End == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start and end dates are required", ErrInvalidDateRange)
		}
		start, err := time.ParseInLocation(DateLayout, strings.TrimSpace(q.Start), loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start %q: expected DD/MM/YYYY", ErrInvalidDateRange, q.Start)
		}
		end, err := time.ParseInLocation(DateLayout, strings.TrimSpace(q.End), loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end %q: expected DD/MM/YYYY", ErrInvalidDateRange, q.End)
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidDateRange, q.End, q.Start)
		}
		return start, endOfDay(end), nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown range %q", ErrInvalidDateRange, q.Kind)
}

// FilterOrdersByRange returns the orders whose timestamp falls inside the window of q.
func FilterOrdersByRange(orders []models.Order, q RangeQuery, now time.Time) ([]models.Order, error) {
	start, end, err := Window(q, now)
	if err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if within(o.Timestamp, start, end) {
			out = append(out, o)
		}
	}
	return out, nil
}

// WeekStart is Monday 00:00 of the week containing now. Sunday counts as the 7th day.
func WeekStart(now time.Time) time.Time {
	wd := int(now.Weekday())
	if wd == 0 {
		wd = 7
	}
	return time.Date(now.Year(), now.Month(), now.Day()-(wd-1), 0, 0, 0, 0, now.Location())
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
