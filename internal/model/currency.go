package model

// Currency is an ISO 4217 code. The ledger keeps balances in a fixed set of them.
type Currency string

const (
	CurrencyBRL Currency = "BRL"
	CurrencyEUR Currency = "EUR"
)

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{CurrencyBRL, CurrencyEUR}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}
