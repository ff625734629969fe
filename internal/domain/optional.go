package domain

import (
	"bytes"
	"encoding/json"
)

// Optional is a JSON field that distinguishes three states: absent from the
// payload, explicitly null, and present with a value. encoding/json only calls
// UnmarshalJSON for keys that appear in the input, so the zero value means
// "absent".
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether the field appeared in the payload, null or not.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was explicitly null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Get returns the value and whether one is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set && !o.null
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.value = zero
		o.null = true
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON implements json.Marshaler. Absent and null both encode as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
