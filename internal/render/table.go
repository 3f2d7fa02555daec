package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

// Labeler resolves the category shown for a transaction.
type Labeler interface {
	CategoryLabel(t model.Transaction) string
	CategoryKindOf(t model.Transaction) model.CategoryKind
}

// Balances writes one line per supported currency, in a fixed order.
func Balances(w io.Writer, totals map[model.Currency]decimal.Decimal) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range model.Currencies {
		amount := totals[c]
		fmt.Fprintf(tw, "%s\t%s\n", signStyle(amount).Render(string(c)), Balance(amount, c))
	}
	return tw.Flush()
}

// Statement writes transactions as a table. An empty list prints empty
// instead of a table.
func Statement(w io.Writer, txs []model.Transaction, lb Labeler, empty string) error {
	if len(txs) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render(empty))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("ID"),
		headerStyle.Render("Date"),
		headerStyle.Render("Description"),
		headerStyle.Render("Category"),
		headerStyle.Render("Amount"))
	for _, t := range txs {
		desc := t.Description
		if desc == "" {
			desc = mutedStyle.Render("-")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Date.Format(DateFormat),
			desc,
			kindStyle(lb.CategoryKindOf(t)).Render(lb.CategoryLabel(t)),
			signStyle(t.Amount).Render(Magnitude(t.Amount, t.Currency)))
	}
	return tw.Flush()
}

// Categories writes the category list with a kind badge per row.
func Categories(w io.Writer, cats []model.Category) error {
	if len(cats) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No categories."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		headerStyle.Render("ID"),
		headerStyle.Render("Name"),
		headerStyle.Render("Kind"))
	fmt.Fprintf(tw, "%s\t%s\t%s\n", strings.Repeat("-", 4), strings.Repeat("-", 20), strings.Repeat("-", 7))
	for _, c := range cats {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, kindStyle(c.Kind).Render(string(c.Kind)))
	}
	return tw.Flush()
}
