// Package catalog holds the item model and the pure derivation pipeline
// (filter, sort) used to build the rendered view from the fetched items.
// Nothing in this package performs I/O.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrMissingID is returned when an item's "id" is absent or null.
var ErrMissingID = errors.New("catalog: item id is missing")

// ID identifies an item for the lifetime of a session.
// The upstream API sends integers; strings are accepted as well.
type ID string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ErrMissingID
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("catalog: item id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids back as numbers so the list command
// round-trips the upstream shape.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Rating is the aggregate review score of an item.
type Rating struct {
	Average float64 `json:"average"`
	Reviews int     `json:"reviews"`
}

// Item is one catalog entry as fetched from the remote API.
type Item struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Price  Price  `json:"price"`
	Image  string `json:"image"`
	Rating Rating `json:"rating"`
}

// UnmarshalJSON decodes an item and requires an id. A missing "id" key and
// an explicit null are both ErrMissingID.
func (it *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	var wire struct {
		plain
		ID *ID `json:"id"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.ID == nil {
		return ErrMissingID
	}
	*it = Item(wire.plain)
	it.ID = *wire.ID
	return nil
}
