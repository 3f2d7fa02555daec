// Package statement writes transaction lists to CSV and reads them back.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

// Header is the CSV header of a statement file.
const Header = "id,date,description,amount,currency,category_id,category"

const (
	numFields   = 7
	dateFormat  = "2006-01-02"
	colID       = 0
	colDate     = 1
	colDesc     = 2
	colAmount   = 3
	colCurrency = 4
	colCatID    = 5
	colCategory = 6
)

// Row is one statement line: a transaction plus the category label shown for it.
type Row struct {
	Transaction model.Transaction
	Category    string
}

// ReadRows reads all rows from a statement CSV.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var rows []Row
	for i, rec := range records[1:] {
		row, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteRows writes rows to a statement CSV (including header).
func WriteRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts a Row to a CSV record.
func MarshalRow(row Row) []string {
	t := row.Transaction
	rec := make([]string, numFields)
	rec[colID] = strconv.FormatInt(t.ID, 10)
	rec[colDate] = t.Date.Format(dateFormat)
	rec[colDesc] = t.Description
	rec[colAmount] = t.Amount.StringFixed(2)
	rec[colCurrency] = string(t.Currency)
	rec[colCatID] = strconv.FormatInt(t.CategoryID, 10)
	rec[colCategory] = row.Category
	return rec
}

// UnmarshalRow converts a CSV record to a Row. The id column may be empty
// for rows written by hand.
func UnmarshalRow(record []string) (Row, error) {
	if len(record) != numFields {
		return Row{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var txID int64
	var err error
	if record[colID] != "" {
		txID, err = strconv.ParseInt(record[colID], 10, 64)
		if err != nil {
			return Row{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
		}
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return Row{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var catID int64
	if record[colCatID] != "" {
		catID, err = strconv.ParseInt(record[colCatID], 10, 64)
		if err != nil {
			return Row{}, fmt.Errorf("parsing category_id %q: %w", record[colCatID], err)
		}
	}

	return Row{
		Transaction: model.Transaction{
			ID:           txID,
			Date:         date,
			Description:  record[colDesc],
			Amount:       amount,
			Currency:     model.Currency(record[colCurrency]),
			CategoryID:   catID,
			CategoryName: record[colCategory],
		},
		Category: record[colCategory],
	}, nil
}
