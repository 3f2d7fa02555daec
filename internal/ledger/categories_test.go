package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/model"
)

func TestAddCategory(t *testing.T) {
	s, blobs := newStore(t)
	sets := blobs.sets

	c, err := s.AddCategory("  Gifts  ", model.KindIncome)
	require.NoError(t, err)
	assert.Equal(t, "Gifts", c.Name, "name is trimmed")
	assert.Equal(t, model.KindIncome, c.Kind)
	assert.Equal(t, sets+1, blobs.sets)

	got, ok := s.Category(c.ID)
	require.True(t, ok)
	assert.Equal(t, c, got)

	cats := s.Categories()
	assert.Equal(t, c, cats[len(cats)-1], "appended in insertion order")
}

func TestAddCategory_Validation(t *testing.T) {
	tests := []struct {
		name  string
		cat   string
		kind  model.CategoryKind
		field string
	}{
		{"empty name", "", model.KindExpense, "name"},
		{"blank name", "   ", model.KindExpense, "name"},
		{"bad kind", "Rent", "transfer", "kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newStore(t)
			_, err := s.AddCategory(tt.cat, tt.kind)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Len(t, s.Categories(), len(DefaultCategories()))
		})
	}
}

func TestEditCategory(t *testing.T) {
	s, _ := newStore(t)

	c, err := s.EditCategory(3, "Fun", model.KindIncome)
	require.NoError(t, err)
	assert.Equal(t, model.Category{ID: 3, Name: "Fun", Kind: model.KindIncome}, c)
	assert.Equal(t, c, s.Categories()[2], "position preserved")

	_, err = s.EditCategory(999, "X", model.KindExpense)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.EditCategory(3, "", model.KindExpense)
	assert.ErrorIs(t, err, ErrValidation)
}

// Editing a category does not rewrite the transactions filed under it:
// their stored sign and name snapshot stay as they were written. Display
// resolves the live name and kind.
func TestEditCategory_LeavesTransactionsStale(t *testing.T) {
	s, _ := newStore(t)
	tx, err := s.AddTransaction(lunch())
	require.NoError(t, err)

	_, err = s.EditCategory(1, "Groceries", model.KindIncome)
	require.NoError(t, err)

	stored, _ := s.Transaction(tx.ID)
	assert.True(t, stored.Amount.Equal(dec("-20")), "sign is not re-derived")
	assert.Equal(t, "Food", stored.CategoryName, "snapshot is not rewritten")
	assert.True(t, s.TotalsByCurrency()[model.CurrencyBRL].Equal(dec("-20")))

	assert.Equal(t, "Groceries", s.CategoryLabel(stored))
	assert.Equal(t, model.KindIncome, s.CategoryKindOf(stored))

	// Touching the transaction re-derives both from the current category.
	desc := "lunch again"
	edited, err := s.EditTransaction(tx.ID, TransactionEdit{Description: &desc})
	require.NoError(t, err)
	assert.True(t, edited.Amount.Equal(dec("20")))
	assert.Equal(t, "Groceries", edited.CategoryName)
}

func TestDeleteCategory_InUse(t *testing.T) {
	s, blobs := newStore(t)
	_, err := s.AddTransaction(lunch())
	require.NoError(t, err)
	before := s.Ledger()
	sets := blobs.sets

	removed, err := s.DeleteCategory(1)
	assert.ErrorIs(t, err, ErrInUse)
	assert.False(t, removed)
	assertSameLedger(t, before, s.Ledger())
	assert.Equal(t, sets, blobs.sets)
}

func TestDeleteCategory_Unreferenced(t *testing.T) {
	s, _ := newStore(t)
	a, err := s.AddCategory("A", model.KindExpense)
	require.NoError(t, err)
	b, err := s.AddCategory("B", model.KindIncome)
	require.NoError(t, err)

	in := lunch()
	in.CategoryID = a.ID
	_, err = s.AddTransaction(in)
	require.NoError(t, err)

	_, err = s.DeleteCategory(a.ID)
	assert.ErrorIs(t, err, ErrInUse)

	removed, err := s.DeleteCategory(b.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	_, ok := s.Category(b.ID)
	assert.False(t, ok)

	for _, tx := range s.ListTransactions(Filter{}) {
		assert.Equal(t, "A", s.CategoryLabel(tx))
	}

	removed, err = s.DeleteCategory(b.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCategoryLabel_Dangling(t *testing.T) {
	s, _ := newStore(t)

	snap := model.Transaction{CategoryID: 404, CategoryName: "Old name", Amount: dec("12")}
	assert.Equal(t, "Old name", s.CategoryLabel(snap))
	assert.Equal(t, model.KindIncome, s.CategoryKindOf(snap))

	bare := model.Transaction{CategoryID: 404, Amount: dec("-1")}
	assert.Equal(t, UnknownCategory, s.CategoryLabel(bare))
	assert.Equal(t, model.KindExpense, s.CategoryKindOf(bare))
}

func TestCategoriesReturnsCopy(t *testing.T) {
	s, _ := newStore(t)
	cats := s.Categories()
	cats[0].Name = "mutated"
	assert.Equal(t, "Food", s.Categories()[0].Name)
}
