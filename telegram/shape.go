package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Shape converts a raw result into the type an endpoint returns. Shapes
// never coerce: a result of the wrong JSON kind is a *ShapeError.
type Shape[T any] func(raw json.RawMessage) (T, error)

// Invoke sends req and maps its result through shape.
func Invoke[T any](ctx context.Context, c *Client, req *Request, shape Shape[T]) (T, error) {
	var zero T
	raw, err := c.Do(ctx, req)
	if err != nil {
		return zero, err
	}
	v, err := shape(raw)
	if err != nil {
		return zero, fmt.Errorf("telegram: %s: %w", req.Method, err)
	}
	return v, nil
}

func expect(raw json.RawMessage, want string) error {
	if got := kindOf(raw); got != want {
		return &ShapeError{Want: want, Got: got}
	}
	return nil
}

// Object decodes a single flat entity.
func Object[T any]() Shape[T] {
	return func(raw json.RawMessage) (T, error) {
		var v T
		if err := expect(raw, "object"); err != nil {
			return v, err
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return v, err
		}
		return v, nil
	}
}

// Union resolves a single member of a discriminated union.
func Union[T any](f *Family[T]) Shape[T] {
	return func(raw json.RawMessage) (T, error) {
		if err := expect(raw, "object"); err != nil {
			var zero T
			return zero, err
		}
		return f.Resolve(raw)
	}
}

// ListOf maps elem over an array, preserving order and duplicates.
func ListOf[T any](elem Shape[T]) Shape[[]T] {
	return func(raw json.RawMessage) ([]T, error) {
		if err := expect(raw, "array"); err != nil {
			return nil, err
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		out := make([]T, 0, len(items))
		for i, item := range items {
			v, err := elem(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// True is the shape of endpoints that return nothing: the result must be
// the literal true.
func True() Shape[struct{}] {
	return func(raw json.RawMessage) (struct{}, error) {
		if !bytes.Equal(bytes.TrimSpace(raw), []byte("true")) {
			got := kindOf(raw)
			if got == "bool" {
				got = "false"
			}
			return struct{}{}, &ShapeError{Want: "true", Got: got}
		}
		return struct{}{}, nil
	}
}

// String expects a JSON string.
func String() Shape[string] {
	return func(raw json.RawMessage) (string, error) {
		var s string
		if err := expect(raw, "string"); err != nil {
			return s, err
		}
		err := json.Unmarshal(raw, &s)
		return s, err
	}
}

// Int expects a JSON integer.
func Int() Shape[int64] {
	return func(raw json.RawMessage) (int64, error) {
		if err := expect(raw, "number"); err != nil {
			return 0, err
		}
		n, err := json.Number(bytes.TrimSpace(raw)).Int64()
		if err != nil {
			return 0, &ShapeError{Want: "integer", Got: string(raw)}
		}
		return n, nil
	}
}

// Bool expects a JSON boolean, true or false.
func Bool() Shape[bool] {
	return func(raw json.RawMessage) (bool, error) {
		var b bool
		if err := expect(raw, "bool"); err != nil {
			return b, err
		}
		err := json.Unmarshal(raw, &b)
		return b, err
	}
}
