package models

import (
	"bytes"
	"encoding/json"
)

// Nullable is a JSON field that distinguishes "key absent" from "key set to
// null" from "key set to a value". Partial guest updates and assistant
// filters both depend on that distinction: an absent key leaves the stored
// value alone (or imposes no query constraint), while an explicit null
// clears it (or matches stored nulls).
type Nullable[T any] struct {
	// Present is true when the key appeared in the JSON document at all.
	Present bool
	// Valid is true when the value was non-null.
	Valid bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		var zero T
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns the value as a pointer suitable for a nullable column,
// nil when the field was null.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
