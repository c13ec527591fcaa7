package telegram

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
)

// Factory builds one concrete value of T from its raw JSON.
type Factory[T any] func(data []byte) (T, error)

// Family resolves the members of one discriminated union. The discriminator
// is a string member (type, status, source, ...) looked up in a fixed table.
// Unknown or missing discriminators fail with *UnknownVariantError.
type Family[T any] struct {
	name  string
	field string
	table map[string]Factory[T]
}

// NewFamily builds a family keyed by the JSON member field.
func NewFamily[T any](name, field string, table map[string]Factory[T]) *Family[T] {
	return &Family[T]{name: name, field: field, table: table}
}

// Name is the family name used in errors.
func (f *Family[T]) Name() string { return f.name }

// Field is the discriminator member.
func (f *Family[T]) Field() string { return f.field }

// Values lists the known discriminator values in sorted order.
func (f *Family[T]) Values() []string {
	out := make([]string, 0, len(f.table))
	for k := range f.table {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Resolve reads the discriminator from data and dispatches to its factory.
func (f *Family[T]) Resolve(data []byte) (T, error) {
	var zero T
	fields, err := decodeObject(data)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", f.name, err)
	}
	disc, err := Opt(fields, f.field, "")
	if err != nil {
		return zero, fmt.Errorf("%s: %w", f.name, err)
	}
	factory, ok := f.table[disc]
	if !ok {
		return zero, &UnknownVariantError{Family: f.name, Field: f.field, Value: disc, Raw: data}
	}
	v, err := factory(data)
	if err != nil {
		return zero, fmt.Errorf("%s %q: %w", f.name, disc, err)
	}
	return v, nil
}

// Variant returns a factory that decodes into the concrete struct V.
func Variant[T any, V any]() Factory[T] {
	return func(data []byte) (T, error) {
		var zero T
		var v V
		if err := json.Unmarshal(data, &v); err != nil {
			return zero, err
		}
		t, ok := any(v).(T)
		if !ok {
			return zero, fmt.Errorf("%T does not implement %s", v, reflect.TypeFor[T]())
		}
		return t, nil
	}
}

// Rule pairs a field-presence predicate with the factory it selects.
type Rule[T any] struct {
	Match func(fields map[string]json.RawMessage) bool
	New   Factory[T]
}

// HasField matches objects carrying key with a non-null value.
func HasField(key string) func(map[string]json.RawMessage) bool {
	return func(fields map[string]json.RawMessage) bool {
		raw, ok := fields[key]
		return ok && !isNull(raw)
	}
}

// HasAll matches objects carrying every key with a non-null value.
func HasAll(keys ...string) func(map[string]json.RawMessage) bool {
	return func(fields map[string]json.RawMessage) bool {
		for _, k := range keys {
			if !HasField(k)(fields) {
				return false
			}
		}
		return true
	}
}

// Structural resolves a union by probing which members are present, for the
// few shapes where the Bot API sends no discriminator. Rules run in order and
// the first match wins.
//
// This is fragile: a new optional field on one variant can make an earlier
// rule match the wrong shape. Keep rules most-specific first.
func Structural[T any](family string, rules ...Rule[T]) Factory[T] {
	return func(data []byte) (T, error) {
		var zero T
		fields, err := decodeObject(data)
		if err != nil {
			return zero, fmt.Errorf("%s: %w", family, err)
		}
		for _, r := range rules {
			if r.Match(fields) {
				return r.New(data)
			}
		}
		return zero, &UnknownVariantError{Family: family, Value: sortedKeys(fields), Raw: data}
	}
}

// resolveOptional resolves raw unless it is absent or null, in which case
// it returns the zero T (a nil interface for union families).
func resolveOptional[T any](resolve func([]byte) (T, error), raw json.RawMessage) (T, error) {
	var zero T
	if isNull(raw) {
		return zero, nil
	}
	return resolve(raw)
}

// resolveAll resolves each element in order.
func resolveAll[T any](resolve func([]byte) (T, error), raws []json.RawMessage) ([]T, error) {
	if raws == nil {
		return nil, nil
	}
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		v, err := resolve(raw)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
