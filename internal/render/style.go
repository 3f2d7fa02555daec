package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

var (
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71")).Bold(true)
	neutralStyle  = lipgloss.NewStyle()
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// signStyle colors red below zero, green above, and leaves zero alone.
func signStyle(d decimal.Decimal) lipgloss.Style {
	switch d.Sign() {
	case -1:
		return negativeStyle
	case 1:
		return positiveStyle
	default:
		return neutralStyle
	}
}

func kindStyle(k model.CategoryKind) lipgloss.Style {
	if k == model.KindIncome {
		return positiveStyle
	}
	return negativeStyle
}

// Balance renders a currency balance as a colored magnitude.
func Balance(amount decimal.Decimal, cur model.Currency) string {
	return signStyle(amount).Render(Magnitude(amount, cur))
}
