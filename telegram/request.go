package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"
)

// methodKey is the reserved top-level member carrying the operation name.
const methodKey = "method"

// Timeouts bound one attempt. Zero fields fall back to the client defaults.
type Timeouts struct {
	// Connect bounds establishing the connection.
	Connect time.Duration `json:"connect" validate:"gte=0"`
	// Read bounds the wait from the request being written to the response
	// body being fully read.
	Read time.Duration `json:"read" validate:"gte=0"`
	// Total bounds the whole attempt.
	Total time.Duration `json:"total" validate:"gte=0"`
}

func (t Timeouts) orDefault(def Timeouts) Timeouts {
	if t.Connect == 0 {
		t.Connect = def.Connect
	}
	if t.Read == 0 {
		t.Read = def.Read
	}
	if t.Total == 0 {
		t.Total = def.Total
	}
	return t
}

// Request is one outgoing Bot API call.
type Request struct {
	Method string
	Params Params

	// Files holds local uploads referenced from Params as attach://<name>.
	// A request with files is sent as multipart/form-data.
	Files *Attachments

	Timeouts Timeouts
	// Attempts caps retries on timeout. Zero uses the client default;
	// negative values are rejected by Do.
	Attempts int
}

// NewRequest starts a request for method with an empty parameter bag.
func NewRequest(method string) *Request {
	return &Request{Method: method}
}

// Set adds a parameter and returns the request for chaining.
func (r *Request) Set(key string, v any) *Request {
	r.Params.Set(key, v)
	return r
}

// Body flattens the parameters and appends the method member.
func (r *Request) Body() (Fields, error) {
	if _, ok := r.Params.Get(methodKey); ok {
		return nil, fmt.Errorf("telegram: param %q is reserved", methodKey)
	}
	fields, err := Flatten(r.Params)
	if err != nil {
		return nil, err
	}
	return append(fields, Field{Key: methodKey, Value: r.Method}), nil
}

// encode renders the body once so every attempt can resend the same bytes.
// jsonBody is fields already marshaled; it is the payload when there are no
// files.
func (r *Request) encode(fields Fields, jsonBody []byte) (payload []byte, contentType string, err error) {
	if r.Files.Len() == 0 {
		return jsonBody, "application/json", nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		value, err := formValue(f.Value)
		if err != nil {
			return nil, "", fmt.Errorf("marshal %q: %w", f.Key, err)
		}
		if err := mw.WriteField(f.Key, value); err != nil {
			return nil, "", fmt.Errorf("write field %q: %w", f.Key, err)
		}
	}
	if err := r.Files.bind(mw); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

// formValue renders one flattened member as a form field: strings verbatim,
// everything else as JSON.
func formValue(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
