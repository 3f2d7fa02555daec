package ledger

import "github.com/tallybook/tally/internal/model"

// UnknownCategory labels transactions whose category cannot be resolved.
const UnknownCategory = "Unknown"

// DefaultCategories returns the categories a fresh ledger starts with.
func DefaultCategories() []model.Category {
	return []model.Category{
		{ID: 1, Name: "Food", Kind: model.KindExpense},
		{ID: 2, Name: "Salary", Kind: model.KindIncome},
		{ID: 3, Name: "Leisure", Kind: model.KindExpense},
		{ID: 4, Name: "Transport", Kind: model.KindExpense},
	}
}
