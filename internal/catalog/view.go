package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewCollator returns a collator for locale-aware name ordering.
// An empty locale selects English.
func NewCollator(locale string) (*collate.Collator, error) {
	if locale == "" {
		locale = "en"
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return collate.New(tag), nil
}

// Filter keeps items whose case-folded name contains the case-folded term.
// An empty term keeps every item. The input is never modified.
func Filter(items []Item, term string) []Item {
	result := make([]Item, 0, len(items))
	if term == "" {
		return append(result, items...)
	}

	fold := cases.Fold()
	needle := fold.String(term)
	for _, item := range items {
		if strings.Contains(fold.String(item.Name), needle) {
			result = append(result, item)
		}
	}
	return result
}

// Sort returns a sorted copy of items. The sort is stable, so items that
// compare equal keep their fetched order. A nil collator uses English.
func Sort(items []Item, key SortKey, c *collate.Collator) []Item {
	sorted := slices.Clone(items)
	if sorted == nil {
		sorted = []Item{}
	}
	slices.SortStableFunc(sorted, comparator(key, c))
	return sorted
}

// Derive builds the rendered view: Filter by term, then Sort by key.
func Derive(items []Item, term string, key SortKey, c *collate.Collator) []Item {
	return Sort(Filter(items, term), key, c)
}

func comparator(key SortKey, c *collate.Collator) func(a, b Item) int {
	switch key.kind {
	case sortPrice:
		return func(a, b Item) int {
			return a.Price.Compare(b.Price)
		}
	case sortRating:
		return func(a, b Item) int {
			return cmp.Compare(b.Rating.Average, a.Rating.Average)
		}
	default:
		if c == nil {
			c = collate.New(language.English)
		}
		return func(a, b Item) int {
			return c.CompareString(a.Name, b.Name)
		}
	}
}
