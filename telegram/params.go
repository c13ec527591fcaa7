package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Params is an ordered parameter bag for one request. A nil value means
// "unset" and is dropped when the bag is flattened. The zero Params is ready
// to use.
type Params struct {
	keys []string
	vals map[string]any
}

// Set stores v under key. Setting an existing key replaces its value in place.
func (p *Params) Set(key string, v any) *Params {
	if p.vals == nil {
		p.vals = make(map[string]any)
	}
	if _, ok := p.vals[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.vals[key] = v
	return p
}

// Get returns the raw value stored under key.
func (p *Params) Get(key string) (any, bool) {
	v, ok := p.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Len is the number of keys, including ones holding nil.
func (p *Params) Len() int { return len(p.keys) }

// Field is one flattened member.
type Field struct {
	Key   string
	Value any
}

// Fields is a flattened, ordered JSON object.
type Fields []Field

// Get returns the value stored under key.
func (f Fields) Get(key string) (any, bool) {
	for _, fl := range f {
		if fl.Key == key {
			return fl.Value, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the members in order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fl := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fl.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(fl.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fl.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Flatten turns a parameter bag into its wire object:
//
//   - a Value is replaced by its JSON tree, which is then flattened;
//   - nil (and nil pointers, slices and maps) drops the key;
//   - slices, arrays and maps are flattened recursively and dropped when the
//     result is empty;
//   - scalars are kept as they are, including "", false and 0;
//   - anything else is a *ParamError naming the key and its Go type.
func Flatten(p Params) (Fields, error) {
	out := make(Fields, 0, len(p.keys))
	for _, k := range p.keys {
		v, keep, err := flattenValue(k, p.vals[k])
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, Field{Key: k, Value: v})
		}
	}
	return out, nil
}

func flattenValue(path string, v any) (any, bool, error) {
	switch x := v.(type) {
	case nil:
		return nil, false, nil
	case string, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return x, true, nil
	case Params:
		return flattenNested(path, x)
	case *Params:
		if x == nil {
			return nil, false, nil
		}
		return flattenNested(path, *x)
	case Value:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, false, nil
		}
		tree, err := Tree(x)
		if err != nil {
			return nil, false, fmt.Errorf("telegram: param %q: %w", path, err)
		}
		return flattenValue(path, tree)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, false, nil
		}
		return flattenValue(path, rv.Elem().Interface())
	case reflect.String:
		return rv.String(), true, nil
	case reflect.Bool:
		return rv.Bool(), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true, nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, false, nil
		}
		items := make([]any, 0, rv.Len())
		for i := range rv.Len() {
			item, keep, err := flattenValue(fmt.Sprintf("%s[%d]", path, i), rv.Index(i).Interface())
			if err != nil {
				return nil, false, err
			}
			if keep {
				items = append(items, item)
			}
		}
		return items, len(items) > 0, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false, &ParamError{Key: path, Type: rv.Type().String()}
		}
		obj := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			item, keep, err := flattenValue(path+"."+k, iter.Value().Interface())
			if err != nil {
				return nil, false, err
			}
			if keep {
				obj[k] = item
			}
		}
		return obj, len(obj) > 0, nil
	}
	return nil, false, &ParamError{Key: path, Type: fmt.Sprintf("%T", v)}
}

func flattenNested(path string, p Params) (any, bool, error) {
	out := make(Fields, 0, len(p.keys))
	for _, k := range p.keys {
		v, keep, err := flattenValue(path+"."+k, p.vals[k])
		if err != nil {
			return nil, false, err
		}
		if keep {
			out = append(out, Field{Key: k, Value: v})
		}
	}
	return out, len(out) > 0, nil
}
