// Package render formats ledger data for the terminal.
package render

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

// DateFormat is the day/month/year layout used in statements.
const DateFormat = "02/01/2006"

// Money formats a signed amount with its currency symbol and grouping.
func Money(amount decimal.Decimal, cur model.Currency) string {
	c := money.GetCurrency(string(cur))
	if c == nil {
		return amount.StringFixed(2) + " " + string(cur)
	}
	minor := amount.Shift(int32(c.Fraction)).Round(0).IntPart()
	return money.New(minor, c.Code).Display()
}

// Magnitude formats |amount|. Balances and statement lines show the
// magnitude and carry the sign in their color.
func Magnitude(amount decimal.Decimal, cur model.Currency) string {
	return Money(amount.Abs(), cur)
}
