package ledger

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

// TransactionInput holds the fields of a new transaction. Only the magnitude
// of Amount is used; its sign comes from the category.
type TransactionInput struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Currency    model.Currency
	CategoryID  int64
}

// TransactionEdit holds the fields to change on an existing transaction.
// Nil fields keep their current value. Sign and category snapshot are
// always re-derived from the category as it is at edit time.
type TransactionEdit struct {
	Date        *time.Time
	Description *string
	Amount      *decimal.Decimal
	Currency    *model.Currency
	CategoryID  *int64
}

// Filter selects the transactions of a statement. The zero Filter selects everything.
type Filter struct {
	Currency     model.Currency // empty matches every currency
	ExpensesOnly bool
}

// ExpenseStatement selects the expenses recorded in one currency.
func ExpenseStatement(c model.Currency) Filter {
	return Filter{Currency: c, ExpensesOnly: true}
}

// Match reports whether t belongs to the statement.
func (f Filter) Match(t model.Transaction) bool {
	if f.Currency != "" && t.Currency != f.Currency {
		return false
	}
	if f.ExpensesOnly && !t.IsExpense() {
		return false
	}
	return true
}

// AddTransaction validates in, derives the amount sign from the category
// and appends the new transaction. A category id that does not resolve
// still produces a transaction, labelled UnknownCategory and signed as an expense.
func (s *Store) AddTransaction(in TransactionInput) (model.Transaction, error) {
	if err := s.validate(in, true); err != nil {
		return model.Transaction{}, err
	}

	next := s.ledger.Clone()
	t := s.build(next, s.ids.Next(), in)
	next.Transactions = append(next.Transactions, t)
	if err := s.commit(next); err != nil {
		return model.Transaction{}, err
	}
	s.log.Debug("transaction added", "id", t.ID, "amount", t.Amount.String(), "currency", t.Currency)
	return t, nil
}

// EditTransaction applies edit to the transaction with the given id,
// keeping its id and position.
func (s *Store) EditTransaction(txID int64, edit TransactionEdit) (model.Transaction, error) {
	i := s.ledger.FindTransaction(txID)
	if i < 0 {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w", txID, ErrNotFound)
	}

	cur := s.ledger.Transactions[i]
	in := TransactionInput{
		Date:        cur.Date,
		Description: cur.Description,
		Amount:      cur.Amount,
		Currency:    cur.Currency,
		CategoryID:  cur.CategoryID,
	}
	if edit.Date != nil {
		in.Date = *edit.Date
	}
	if edit.Description != nil {
		in.Description = *edit.Description
	}
	if edit.Amount != nil {
		in.Amount = *edit.Amount
	}
	if edit.Currency != nil {
		in.Currency = *edit.Currency
	}
	if edit.CategoryID != nil {
		in.CategoryID = *edit.CategoryID
	}
	if err := s.validate(in, edit.Amount != nil); err != nil {
		return model.Transaction{}, err
	}

	next := s.ledger.Clone()
	t := s.build(next, txID, in)
	next.Transactions[i] = t
	if err := s.commit(next); err != nil {
		return model.Transaction{}, err
	}
	s.log.Debug("transaction edited", "id", t.ID)
	return t, nil
}

// DeleteTransaction removes the transaction with the given id and reports
// whether one was removed. Nothing is saved when there was nothing to remove.
func (s *Store) DeleteTransaction(txID int64) (bool, error) {
	i := s.ledger.FindTransaction(txID)
	if i < 0 {
		return false, nil
	}
	next := s.ledger.Clone()
	next.Transactions = slices.Delete(next.Transactions, i, i+1)
	if err := s.commit(next); err != nil {
		return false, err
	}
	s.log.Debug("transaction deleted", "id", txID)
	return true, nil
}

// Transaction returns the transaction with the given id.
func (s *Store) Transaction(txID int64) (model.Transaction, bool) {
	i := s.ledger.FindTransaction(txID)
	if i < 0 {
		return model.Transaction{}, false
	}
	return s.ledger.Transactions[i], true
}

// ListTransactions returns a fresh slice of the transactions matching f,
// newest date first; transactions on the same date are ordered most
// recently added first.
func (s *Store) ListTransactions(f Filter) []model.Transaction {
	out := make([]model.Transaction, 0, len(s.ledger.Transactions))
	for i := len(s.ledger.Transactions) - 1; i >= 0; i-- {
		if t := s.ledger.Transactions[i]; f.Match(t) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// TotalsByCurrency sums the signed amounts per currency. Every supported
// currency is present, at zero when it has no transactions.
func (s *Store) TotalsByCurrency() map[model.Currency]decimal.Decimal {
	totals := make(map[model.Currency]decimal.Decimal, len(model.Currencies))
	for _, c := range model.Currencies {
		totals[c] = decimal.Zero
	}
	for _, t := range s.ledger.Transactions {
		totals[t.Currency] = totals[t.Currency].Add(t.Amount)
	}
	return totals
}

// CategoryLabel is the category name to show for t: the live category name
// when it still exists, the snapshot taken at write time otherwise.
func (s *Store) CategoryLabel(t model.Transaction) string {
	if i := s.ledger.FindCategory(t.CategoryID); i >= 0 {
		return s.ledger.Categories[i].Name
	}
	if t.CategoryName != "" {
		return t.CategoryName
	}
	return UnknownCategory
}

// CategoryKindOf is the kind to show for t: the live category kind when it
// still exists, the kind implied by the amount sign otherwise.
func (s *Store) CategoryKindOf(t model.Transaction) model.CategoryKind {
	if i := s.ledger.FindCategory(t.CategoryID); i >= 0 {
		return s.ledger.Categories[i].Kind
	}
	if t.IsExpense() {
		return model.KindExpense
	}
	return model.KindIncome
}

// validate checks in. The two-decimal rule applies only to a newly supplied
// amount; stored amounts may carry more places.
func (s *Store) validate(in TransactionInput, newAmount bool) error {
	if in.Date.IsZero() {
		return invalid("date", "required")
	}
	if today := s.today(); day(in.Date).After(today) {
		return fmt.Errorf("%w: %s is after %s", ErrFutureDate,
			day(in.Date).Format(DateFormat), today.Format(DateFormat))
	}
	if !in.Currency.Valid() {
		return invalid("currency", fmt.Sprintf("unsupported currency %q", in.Currency))
	}
	if in.CategoryID == 0 {
		return invalid("category", "required")
	}
	if newAmount && !hasCents(in.Amount) {
		return invalid("amount", fmt.Sprintf("%s has more than 2 decimal places", in.Amount))
	}
	return nil
}

// build resolves the category against l and returns the transaction to store.
func (s *Store) build(l model.Ledger, txID int64, in TransactionInput) model.Transaction {
	name, kind := UnknownCategory, model.KindExpense
	if i := l.FindCategory(in.CategoryID); i >= 0 {
		name, kind = l.Categories[i].Name, l.Categories[i].Kind
	}
	return model.Transaction{
		ID:           txID,
		Date:         day(in.Date),
		Description:  in.Description,
		Amount:       signed(in.Amount, kind),
		Currency:     in.Currency,
		CategoryID:   in.CategoryID,
		CategoryName: name,
	}
}
