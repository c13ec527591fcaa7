package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value is a Bot API entity with a JSON wire form. Flat entities and union
// variants implement it with a value-receiver MarshalJSON; absent optional
// fields carry omitempty so they are omitted rather than sent as null.
//
// Incoming values are built with json.Unmarshal, or through a Family when
// the entity belongs to a discriminated union.
type Value interface {
	json.Marshaler
}

// Tree renders v as a JSON-compatible tree made of map[string]any, []any,
// json.Number, string, bool and nil. Numbers stay json.Number so 64-bit chat
// IDs survive the trip.
func Tree(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return decodeTree(data)
}

func decodeTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Opt reads key from a decoded object. It returns def when the key is absent
// or explicitly null, and an error only when the value has the wrong type.
func Opt[T any](fields map[string]json.RawMessage, key string, def T) (T, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, fmt.Errorf("field %q: %w", key, err)
	}
	return v, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// decodeObject splits a JSON object into its raw members. A JSON null or a
// non-object yields a *ShapeError.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	if k := kindOf(data); k != "object" {
		return nil, &ShapeError{Want: "object", Got: k}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// kindOf names the JSON kind of raw by its first significant byte.
func kindOf(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "missing"
	}
	switch c := raw[0]; {
	case c == '{':
		return "object"
	case c == '[':
		return "array"
	case c == '"':
		return "string"
	case c == 't' || c == 'f':
		return "bool"
	case c == 'n':
		return "null"
	case c == '-' || (c >= '0' && c <= '9'):
		return "number"
	default:
		return "invalid"
	}
}

// marshalTagged encodes plain (a struct without its own MarshalJSON) and
// prepends the discriminator member field:value.
func marshalTagged(field, value string, plain any) ([]byte, error) {
	body, err := json.Marshal(plain)
	if err != nil {
		return nil, err
	}
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("tagged %s %q: encoded as %s", field, value, kindOf(body))
	}
	key, _ := json.Marshal(field)
	tag, _ := json.Marshal(value)

	out := make([]byte, 0, len(body)+len(key)+len(tag)+2)
	out = append(out, '{')
	out = append(out, key...)
	out = append(out, ':')
	out = append(out, tag...)
	if len(body) > 2 {
		out = append(out, ',')
	}
	return append(out, body[1:]...), nil
}
