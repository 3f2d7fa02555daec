package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one income or expense record.
type Transaction struct {
	ID           int64
	Date         time.Time // midnight UTC, no time component
	Description  string
	Amount       decimal.Decimal // negative = expense, positive = income
	Currency     Currency
	CategoryID   int64
	CategoryName string // snapshot taken at write time, display fallback only
}

// IsExpense reports whether the stored amount is an outflow.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}
