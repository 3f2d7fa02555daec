package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

// The stored blob keeps the field names and enum spellings written by the
// browser version of the ledger, so existing data loads unchanged.

type wireLedger struct {
	Transactions []wireTransaction `json:"transacoes"`
	Categories   []wireCategory    `json:"categorias"`
}

type wireTransaction struct {
	ID           int64       `json:"id"`
	Date         string      `json:"data"`
	Description  string      `json:"descricao"`
	Amount       json.Number `json:"valor"`
	Currency     string      `json:"moeda"`
	CategoryID   int64       `json:"categoria_id"`
	CategoryName string      `json:"categoria"`
}

type wireCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
	Kind string `json:"tipo"`
}

const (
	wireExpense = "Despesa"
	wireIncome  = "Receita"
)

// Encode serializes a ledger into the stored blob format.
func Encode(l model.Ledger) ([]byte, error) {
	w := wireLedger{
		Transactions: make([]wireTransaction, 0, len(l.Transactions)),
		Categories:   make([]wireCategory, 0, len(l.Categories)),
	}
	for _, t := range l.Transactions {
		w.Transactions = append(w.Transactions, wireTransaction{
			ID:           t.ID,
			Date:         t.Date.Format(DateFormat),
			Description:  t.Description,
			Amount:       json.Number(t.Amount.String()),
			Currency:     string(t.Currency),
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
		})
	}
	for _, c := range l.Categories {
		kind, err := marshalKind(c.Kind)
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", c.ID, err)
		}
		w.Categories = append(w.Categories, wireCategory{ID: c.ID, Name: c.Name, Kind: kind})
	}
	return json.Marshal(w)
}

// Decode parses a stored blob. Any structural problem (bad JSON, unknown
// kind or currency, unparseable date or amount, duplicate id) is an error.
// Transactions stored without an amount (the browser wrote NaN as null) are
// dropped and their ids returned as skipped.
func Decode(data []byte) (l model.Ledger, skipped []int64, err error) {
	var w wireLedger
	if err := json.Unmarshal(data, &w); err != nil {
		return model.Ledger{}, nil, fmt.Errorf("parsing ledger JSON: %w", err)
	}

	l = model.Ledger{
		Transactions: make([]model.Transaction, 0, len(w.Transactions)),
		Categories:   make([]model.Category, 0, len(w.Categories)),
	}

	catSeen := make(map[int64]bool, len(w.Categories))
	for i, wc := range w.Categories {
		if catSeen[wc.ID] {
			return model.Ledger{}, nil, fmt.Errorf("category %d: duplicate id %d", i, wc.ID)
		}
		catSeen[wc.ID] = true
		kind, err := unmarshalKind(wc.Kind)
		if err != nil {
			return model.Ledger{}, nil, fmt.Errorf("category %d: %w", i, err)
		}
		l.Categories = append(l.Categories, model.Category{ID: wc.ID, Name: wc.Name, Kind: kind})
	}

	txSeen := make(map[int64]bool, len(w.Transactions))
	for i, wt := range w.Transactions {
		if txSeen[wt.ID] {
			return model.Ledger{}, nil, fmt.Errorf("transaction %d: duplicate id %d", i, wt.ID)
		}
		txSeen[wt.ID] = true
		if wt.Amount == "" {
			skipped = append(skipped, wt.ID)
			continue
		}
		t, err := unmarshalTransaction(wt)
		if err != nil {
			return model.Ledger{}, nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		l.Transactions = append(l.Transactions, t)
	}
	return l, skipped, nil
}

func unmarshalTransaction(wt wireTransaction) (model.Transaction, error) {
	date, err := time.Parse(DateFormat, wt.Date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", wt.Date, err)
	}
	amount, err := decimal.NewFromString(wt.Amount.String())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", wt.Amount, err)
	}
	cur := model.Currency(wt.Currency)
	if !cur.Valid() {
		return model.Transaction{}, fmt.Errorf("unknown currency %q", wt.Currency)
	}
	return model.Transaction{
		ID:           wt.ID,
		Date:         date,
		Description:  wt.Description,
		Amount:       amount,
		Currency:     cur,
		CategoryID:   wt.CategoryID,
		CategoryName: wt.CategoryName,
	}, nil
}

func marshalKind(k model.CategoryKind) (string, error) {
	switch k {
	case model.KindExpense:
		return wireExpense, nil
	case model.KindIncome:
		return wireIncome, nil
	default:
		return "", fmt.Errorf("unknown category kind %q", k)
	}
}

func unmarshalKind(s string) (model.CategoryKind, error) {
	switch s {
	case wireExpense:
		return model.KindExpense, nil
	case wireIncome:
		return model.KindIncome, nil
	default:
		return "", fmt.Errorf("unknown category kind %q", s)
	}
}
