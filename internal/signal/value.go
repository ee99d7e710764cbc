// Package signal holds raw host facts and the optional value type used to
// carry them. A fact that could not be read is "unknown", never absent.
package signal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Unknown is the sentinel emitted for any fact that could not be read.
const Unknown = "unknown"

// Value is a fact that is either known or unknown.
type Value[T any] struct {
	v  T
	ok bool
}

// Known wraps a value that was read successfully.
func Known[T any](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// Missing returns the unknown value of type T.
func Missing[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr converts a nullable pointer into a Value.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Missing[T]()
	}

	return Known(*p)
}

func (v Value[T]) Get() (T, bool) {
	return v.v, v.ok
}

func (v Value[T]) IsKnown() bool {
	return v.ok
}

// Or returns the wrapped value, or def when unknown.
func (v Value[T]) Or(def T) T {
	if !v.ok {
		return def
	}

	return v.v
}

func (v Value[T]) String() string {
	if !v.ok {
		return Unknown
	}

	if f, ok := any(v.v).(float64); ok {
		return formatFloat(f)
	}

	return fmt.Sprint(v.v)
}

// MarshalJSON writes the sentinel for unknown values. Infinite floats, which
// JSON cannot carry, are written as "Infinity" or "-Infinity".
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return json.Marshal(Unknown)
	}

	if f, ok := any(v.v).(float64); ok {
		switch {
		case math.IsInf(f, 1):
			return json.Marshal("Infinity")
		case math.IsInf(f, -1):
			return json.Marshal("-Infinity")
		case math.IsNaN(f):
			return json.Marshal(Unknown)
		}
	}

	return json.Marshal(v.v)
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`"`+Unknown+`"`)) {
		*v = Missing[T]()
		return nil
	}

	if p, ok := any(&v.v).(*float64); ok {
		switch string(trimmed) {
		case `"Infinity"`:
			*p = math.Inf(1)
			v.ok = true
			return nil
		case `"-Infinity"`:
			*p = math.Inf(-1)
			v.ok = true
			return nil
		}
	}

	var out T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return err
	}
	*v = Known(out)

	return nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}
