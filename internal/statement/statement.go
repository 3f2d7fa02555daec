package statement

import (
	"fmt"
	"io"
	"strings"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

// Source is what Export needs from a ledger.
type Source interface {
	ListTransactions(f ledger.Filter) []model.Transaction
	CategoryLabel(t model.Transaction) string
}

// Sink is what Import needs from a ledger.
type Sink interface {
	AddTransaction(in ledger.TransactionInput) (model.Transaction, error)
	Categories() []model.Category
}

// Build returns the statement selected by f, with resolved category labels.
func Build(src Source, f ledger.Filter) []Row {
	txs := src.ListTransactions(f)
	rows := make([]Row, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, Row{Transaction: t, Category: src.CategoryLabel(t)})
	}
	return rows
}

// Export writes the statement selected by f as CSV and returns the row count.
func Export(w io.Writer, src Source, f ledger.Filter) (int, error) {
	rows := Build(src, f)
	if err := WriteRows(w, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ExportPDF writes the statement selected by f as a PDF and returns the row count.
func ExportPDF(w io.Writer, src Source, f ledger.Filter, title string) (int, error) {
	rows := Build(src, f)
	if err := WritePDF(w, title, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Import adds every row of a statement CSV as a new transaction and returns
// how many were added. The whole file is parsed before anything is added.
// Each row gets a fresh id; its category is matched by id, then by name,
// and otherwise recorded as unknown. Adding stops at the first rejected row.
func Import(r io.Reader, sink Sink) (int, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return 0, err
	}

	cats := sink.Categories()
	for i, row := range rows {
		t := row.Transaction
		in := ledger.TransactionInput{
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount,
			Currency:    t.Currency,
			CategoryID:  matchCategory(cats, t.CategoryID, row.Category),
		}
		if _, err := sink.AddTransaction(in); err != nil {
			return i, fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return len(rows), nil
}

func matchCategory(cats []model.Category, catID int64, name string) int64 {
	for _, c := range cats {
		if c.ID == catID {
			return catID
		}
	}
	for _, c := range cats {
		if name != "" && strings.EqualFold(c.Name, name) {
			return c.ID
		}
	}
	return catID
}
