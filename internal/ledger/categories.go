package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tallybook/tally/internal/model"
)

// AddCategory creates a category. The name must not be blank.
func (s *Store) AddCategory(name string, kind model.CategoryKind) (model.Category, error) {
	name, err := validateCategory(name, kind)
	if err != nil {
		return model.Category{}, err
	}

	c := model.Category{ID: s.ids.Next(), Name: name, Kind: kind}
	next := s.ledger.Clone()
	next.Categories = append(next.Categories, c)
	if err := s.commit(next); err != nil {
		return model.Category{}, err
	}
	s.log.Debug("category added", "id", c.ID, "name", c.Name, "kind", c.Kind)
	return c, nil
}

// EditCategory renames and/or re-kinds a category in place. Transactions
// already filed under it keep their stored sign and name snapshot.
func (s *Store) EditCategory(catID int64, name string, kind model.CategoryKind) (model.Category, error) {
	i := s.ledger.FindCategory(catID)
	if i < 0 {
		return model.Category{}, fmt.Errorf("category %d: %w", catID, ErrNotFound)
	}
	name, err := validateCategory(name, kind)
	if err != nil {
		return model.Category{}, err
	}

	next := s.ledger.Clone()
	next.Categories[i].Name = name
	next.Categories[i].Kind = kind
	if err := s.commit(next); err != nil {
		return model.Category{}, err
	}
	s.log.Debug("category edited", "id", catID)
	return next.Categories[i], nil
}

// DeleteCategory removes an unreferenced category and reports whether one
// was removed. It fails with ErrInUse while any transaction references it.
func (s *Store) DeleteCategory(catID int64) (bool, error) {
	if s.ledger.CategoryInUse(catID) {
		return false, fmt.Errorf("category %d: %w", catID, ErrInUse)
	}
	i := s.ledger.FindCategory(catID)
	if i < 0 {
		return false, nil
	}
	next := s.ledger.Clone()
	next.Categories = slices.Delete(next.Categories, i, i+1)
	if err := s.commit(next); err != nil {
		return false, err
	}
	s.log.Debug("category deleted", "id", catID)
	return true, nil
}

// Categories returns a copy of the categories in insertion order.
func (s *Store) Categories() []model.Category {
	return slices.Clone(s.ledger.Categories)
}

// Category returns the category with the given id.
func (s *Store) Category(catID int64) (model.Category, bool) {
	i := s.ledger.FindCategory(catID)
	if i < 0 {
		return model.Category{}, false
	}
	return s.ledger.Categories[i], true
}

func validateCategory(name string, kind model.CategoryKind) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name", "required")
	}
	if !kind.Valid() {
		return "", invalid("kind", fmt.Sprintf("expected expense or income, got %q", kind))
	}
	return name, nil
}
