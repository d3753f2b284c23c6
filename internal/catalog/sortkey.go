package catalog

import (
	"fmt"
	"strings"
)

type sortKind uint8

const (
	sortName sortKind = iota
	sortPrice
	sortRating
)

// SortKey selects the ordering of the derived view. The set is closed:
// only the three exported values exist, and the zero value is SortByName.
type SortKey struct {
	kind sortKind
}

var (
	SortByName   = SortKey{sortName}
	SortByPrice  = SortKey{sortPrice}
	SortByRating = SortKey{sortRating}
)

// SortKeys returns the selectable keys in selector order.
func SortKeys() []SortKey {
	return []SortKey{SortByName, SortByPrice, SortByRating}
}

// ParseSortKey maps "name", "price" or "rating" (any case) to a key.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return SortByName, nil
	case "price":
		return SortByPrice, nil
	case "rating":
		return SortByRating, nil
	}
	return SortByName, fmt.Errorf("unknown sort key %q (want name, price or rating)", s)
}

// String returns the config/flag spelling of the key.
func (k SortKey) String() string {
	switch k.kind {
	case sortPrice:
		return "price"
	case sortRating:
		return "rating"
	default:
		return "name"
	}
}

// Label returns the selector caption.
func (k SortKey) Label() string {
	switch k.kind {
	case sortPrice:
		return "Price"
	case sortRating:
		return "Rating"
	default:
		return "Name"
	}
}

// Next cycles forward through SortKeys.
func (k SortKey) Next() SortKey {
	return SortKey{(k.kind + 1) % 3}
}

// Prev cycles backward through SortKeys.
func (k SortKey) Prev() SortKey {
	return SortKey{(k.kind + 2) % 3}
}

// MarshalText implements encoding.TextMarshaler (used by YAML and JSON).
func (k SortKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SortKey) UnmarshalText(text []byte) error {
	parsed, err := ParseSortKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
