// Package nullable holds column values that may be SQL NULL.
package nullable

import (
	"bytes"
	"database/sql"
	"encoding/json"
)

// Value in `nullable` package
// implements: sql.Scanner and driver.Valuer by embedding sql.Null[T]
// implements: json.Marshaler and json.Unmarshaler, NULL <-> null
type Value[T any] struct {
	sql.Null[T]
}

// Of returns a valid (non-NULL) Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{sql.Null[T]{V: v, Valid: true}}
}

// Null returns a NULL Value.
func Null[T any]() Value[T] {
	return Value[T]{}
}

func (n Value[T]) MarshalJSON() ([]byte, error) {
	if n.Valid {
		return json.Marshal(n.V)
	}
	return []byte("null"), nil
}

func (n *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		var zero T
		n.V, n.Valid = zero, false
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.V, n.Valid = v, true
	return nil
}

// ForceValue returns the zero T for NULL.
func (n Value[T]) ForceValue() T {
	if !n.Valid {
		var zero T
		return zero
	}
	return n.V
}

func (n Value[T]) IsNil() bool {
	return !n.Valid
}
