package models

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Number is the set of numeric types a dataset field can hold.
type Number interface {
	~int64 | ~float64
}

// Optional is a numeric dataset field that may be missing. A value that is
// null, zero or negative is absent: it never takes part in a statistic.
type Optional[T Number] struct {
	Value T
	Valid bool
}

// Some wraps v as a set Optional.
func Some[T Number](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// None returns an unset Optional.
func None[T Number]() Optional[T] {
	return Optional[T]{}
}

// Present reports whether the value is set and strictly positive.
func (o Optional[T]) Present() bool {
	return o.Valid && o.Value > 0
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	if !o.Present() {
		var zero T
		return zero, false
	}
	return o.Value, true
}

// Float converts the value to a float64 Optional, keeping its validity.
func (o Optional[T]) Float() Optional[float64] {
	return Optional[float64]{Value: float64(o.Value), Valid: o.Valid}
}

// UnmarshalJSON decodes a JSON number or null. Integer fields accept float
// encodings such as 131072.0 since the upstream dataset is not strict.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*o = Optional[T]{Value: T(f), Valid: true}
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
