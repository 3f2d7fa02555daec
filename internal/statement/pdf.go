package statement

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/render"
)

const (
	pdfRowHeight = 7.0
	pdfPageLimit = 270.0
	pdfDescWidth = 60
)

var pdfCols = []struct {
	title string
	width float64
	align string
}{
	{"DATE", 26, "C"},
	{"DESCRIPTION", 84, "L"},
	{"CATEGORY", 40, "L"},
	{"AMOUNT", 32, "R"},
}

// WritePDF renders rows as a printable A4 statement followed by the total
// of each currency that appears in it.
func WritePDF(w io.Writer, title string, rows []Row) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(14, 14, 14)
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(20, 20, 20)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.SetTextColor(20, 20, 20)
		for i, c := range pdfCols {
			ln := 0
			if i == len(pdfCols)-1 {
				ln = 1
			}
			pdf.CellFormat(c.width, 8, c.title, "1", ln, "C", true, 0, "")
		}
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	totals := make(map[model.Currency]decimal.Decimal)
	for _, r := range rows {
		t := r.Transaction
		totals[t.Currency] = totals[t.Currency].Add(t.Amount)

		if pdf.GetY() > pdfPageLimit {
			pdf.AddPage()
			header()
		}
		cells := []string{
			t.Date.Format(render.DateFormat),
			tr(trimTo(t.Description, pdfDescWidth)),
			tr(r.Category),
			tr(render.Magnitude(t.Amount, t.Currency)),
		}
		for i, c := range pdfCols {
			if i == len(pdfCols)-1 {
				setAmountColor(pdf, t.Amount)
				pdf.CellFormat(c.width, pdfRowHeight, cells[i], "1", 1, c.align, false, 0, "")
				pdf.SetTextColor(30, 30, 30)
				continue
			}
			pdf.CellFormat(c.width, pdfRowHeight, cells[i], "1", 0, c.align, false, 0, "")
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	for _, c := range model.Currencies {
		total, ok := totals[c]
		if !ok {
			continue
		}
		setAmountColor(pdf, total)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Total %s: %s", c, render.Money(total, c))), "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing statement PDF: %w", err)
	}
	return nil
}

func setAmountColor(pdf *gofpdf.Fpdf, d decimal.Decimal) {
	switch d.Sign() {
	case -1:
		pdf.SetTextColor(0xFF, 0x6B, 0x6B)
	case 1:
		pdf.SetTextColor(0x2E, 0xCC, 0x71)
	default:
		pdf.SetTextColor(30, 30, 30)
	}
}

func trimTo(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
