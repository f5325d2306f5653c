package aggregation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var monthNames = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var weekdayNames = [7]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado",
}

// MonthName returns the pt-BR name of m.
func MonthName(m time.Month) string {
	return monthNames[m-1]
}

// WeekdayName returns the pt-BR name of d.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// FormatBRL renders an amount as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), frac)
}

var (
	groupedWithComma = regexp.MustCompile(`^\d{1,3}(\.\d{3})+,\d+$`)
	plainWithComma   = regexp.MustCompile(`^\d+,\d+$`)
	groupedOnly      = regexp.MustCompile(`^\d{1,3}(\.\d{3}){2,}$`)
	plainDecimal     = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// ParseBRL reads a non-negative amount typed with Brazilian separators
// ("1.234,56", "R$ 10,5", "7"). A "." is a thousands separator only when a
// "," follows or more than one group is present ("1.234.567"); otherwise it
// is a decimal point, so "5.00" is five.
func ParseBRL(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return decimal.Zero, fmt.Errorf("negative amount %q", s)
	}

	var normalized string
	switch {
	case groupedWithComma.MatchString(s):
		normalized = strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	case plainWithComma.MatchString(s):
		normalized = strings.Replace(s, ",", ".", 1)
	case groupedOnly.MatchString(s):
		normalized = strings.ReplaceAll(s, ".", "")
	case plainDecimal.MatchString(s):
		normalized = s
	default:
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}
