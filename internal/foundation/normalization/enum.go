// Package normalization maps loosely written configuration values onto enums.
package normalization

import (
	"fmt"
	"slices"
	"strings"
)

// Enum normalizes strings to values of T. Lookups ignore case and
// surrounding whitespace.
type Enum[T comparable] struct {
	name     string
	values   map[string]T
	keys     []string
	fallback T
}

// NewEnum creates an enum normalizer. name is used in messages; fallback is
// returned for unknown input.
func NewEnum[T comparable](name string, values map[string]T, fallback T) *Enum[T] {
	e := &Enum[T]{name: name, values: make(map[string]T, len(values)), fallback: fallback}
	for k, v := range values {
		key := clean(k)
		e.values[key] = v
		e.keys = append(e.keys, key)
	}
	slices.Sort(e.keys)
	return e
}

// Normalize returns the value for raw, or the fallback.
func (e *Enum[T]) Normalize(raw string) T {
	if v, ok := e.values[clean(raw)]; ok {
		return v
	}
	return e.fallback
}

// Parse is Normalize with an error for unknown input.
func (e *Enum[T]) Parse(raw string) (T, error) {
	if v, ok := e.values[clean(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %s", e.name, raw, strings.Join(e.keys, ", "))
}

// Valid reports whether raw names a known value.
func (e *Enum[T]) Valid(raw string) bool {
	_, ok := e.values[clean(raw)]
	return ok
}

// Keys returns the accepted spellings, sorted.
func (e *Enum[T]) Keys() []string { return slices.Clone(e.keys) }

// Check normalizes raw and describes what changed, for config warnings.
// The message is empty when raw was already canonical.
func (e *Enum[T]) Check(field, raw string) (T, string) {
	v, err := e.Parse(raw)
	if err != nil {
		return e.fallback, fmt.Sprintf("%s: %v, using %v", field, err, e.fallback)
	}
	if cleaned := clean(raw); cleaned != raw {
		return v, fmt.Sprintf("normalized %s from '%s' to '%s'", field, raw, cleaned)
	}
	return v, ""
}

func clean(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
