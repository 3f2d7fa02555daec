package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

// DateFormat is the calendar-date layout used on the wire and on the command line.
const DateFormat = "2006-01-02"

// ParseAmount parses a user-entered amount. Both "1234.56" and the
// Brazilian "1.234,56" notation are accepted. The sign is kept as typed;
// the store replaces it with the one derived from the category.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, invalid("amount", "required")
	}
	norm := s
	if strings.Contains(norm, ",") {
		norm = strings.ReplaceAll(norm, ".", "")
		norm = strings.ReplaceAll(norm, ",", ".")
	}
	d, err := decimal.NewFromString(norm)
	if err != nil {
		return decimal.Zero, invalid("amount", fmt.Sprintf("cannot parse %q", s))
	}
	return d, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalid("date", fmt.Sprintf("expected YYYY-MM-DD, got %q", s))
	}
	return t, nil
}

// ParseCurrency parses a currency code, case-insensitively.
func ParseCurrency(s string) (model.Currency, error) {
	c := model.Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", invalid("currency", fmt.Sprintf("unsupported currency %q", s))
	}
	return c, nil
}

// ParseKind parses a category kind ("expense" or "income").
func ParseKind(s string) (model.CategoryKind, error) {
	k := model.CategoryKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", invalid("kind", fmt.Sprintf("expected expense or income, got %q", s))
	}
	return k, nil
}

// day truncates t to its calendar date at midnight UTC.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// signed gives amount the sign dictated by kind: income is positive,
// everything else (including an unresolved category) is negative.
func signed(amount decimal.Decimal, kind model.CategoryKind) decimal.Decimal {
	if kind == model.KindIncome {
		return amount.Abs()
	}
	return amount.Abs().Neg()
}

// hasCents reports whether d fits in two decimal places.
func hasCents(d decimal.Decimal) bool {
	hundred := decimal.NewFromInt(100)
	return d.Mul(hundred).Equal(d.Mul(hundred).Floor())
}
