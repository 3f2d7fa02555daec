package model

// CategoryKind decides the sign of the transactions filed under a category.
type CategoryKind string

const (
	KindExpense CategoryKind = "expense"
	KindIncome  CategoryKind = "income"
)

// Valid reports whether k is one of the known kinds.
func (k CategoryKind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// Category is a user-defined bucket for transactions.
type Category struct {
	ID   int64
	Name string
	Kind CategoryKind
}
