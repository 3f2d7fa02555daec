package model

import "slices"

// Ledger is the aggregate of every transaction and category of a user.
// Both collections keep insertion order.
type Ledger struct {
	Transactions []Transaction
	Categories   []Category
}

// Clone returns a deep copy that shares no backing arrays with l.
func (l Ledger) Clone() Ledger {
	return Ledger{
		Transactions: slices.Clone(l.Transactions),
		Categories:   slices.Clone(l.Categories),
	}
}

// FindTransaction returns the index of the transaction with id, or -1.
func (l Ledger) FindTransaction(id int64) int {
	return slices.IndexFunc(l.Transactions, func(t Transaction) bool { return t.ID == id })
}

// FindCategory returns the index of the category with id, or -1.
func (l Ledger) FindCategory(id int64) int {
	return slices.IndexFunc(l.Categories, func(c Category) bool { return c.ID == id })
}

// CategoryInUse reports whether any transaction references the category.
func (l Ledger) CategoryInUse(id int64) bool {
	return slices.ContainsFunc(l.Transactions, func(t Transaction) bool { return t.CategoryID == id })
}
