package telegram

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/edouard/telewire/internal/platform"
)

// Sentinel errors. Programmer errors fail fast and are never retried.
var (
	// ErrInvalidAttempts is returned when a request asks for fewer than one attempt.
	ErrInvalidAttempts = platform.ErrInvalidAttempts

	ErrDuplicateAttachment   = errors.New("telegram: duplicate attachment name")
	ErrInvalidAttachmentName = errors.New("telegram: invalid attachment name")
	ErrAttachmentNames       = errors.New("telegram: no unique attachment name available")
	ErrEmptyInputFile        = errors.New("telegram: empty input file")

	// ErrReadTimeout marks an attempt whose response did not arrive within
	// the read timeout. It is retryable, like any other timeout.
	ErrReadTimeout = errors.New("telegram: read timeout")
)

// maxQuotedBody caps how much of a non-JSON body is quoted in an Error.
const maxQuotedBody = 512

// Error is a failure reported by the Bot API (ok=false) or a response body
// that is not JSON at all, in which case Code is 0.
type Error struct {
	Method      string
	Code        int
	Description string
	Parameters  *ResponseParameters
}

func (e *Error) Error() string {
	return fmt.Sprintf("telegram: %s: %d %s", e.Method, e.Code, e.Description)
}

// RetryAfter is the flood-control delay suggested by the server, or 0.
func (e *Error) RetryAfter() time.Duration {
	if e.Parameters == nil {
		return 0
	}
	return time.Duration(e.Parameters.RetryAfter) * time.Second
}

// MigrateTo reports the supergroup a group chat was migrated to.
func (e *Error) MigrateTo() (int64, bool) {
	if e.Parameters == nil || e.Parameters.MigrateToChatID == 0 {
		return 0, false
	}
	return e.Parameters.MigrateToChatID, true
}

func invalidResponse(method string, body []byte) *Error {
	quoted := string(body)
	if len(quoted) > maxQuotedBody {
		quoted = quoted[:maxQuotedBody] + "..."
	}
	return &Error{Method: method, Description: fmt.Sprintf("invalid response: %q", quoted)}
}

// UnknownVariantError reports a union member whose discriminator is not in
// the family's table. Field is empty for structural families, in which case
// Value lists the keys that were probed.
type UnknownVariantError struct {
	Family string
	Field  string
	Value  string
	Raw    json.RawMessage
}

func (e *UnknownVariantError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("telegram: unknown %s variant: no rule matched keys [%s]", e.Family, e.Value)
	}
	return fmt.Sprintf("telegram: unknown %s variant: %s=%q", e.Family, e.Field, e.Value)
}

// ParamError reports a request parameter whose Go type has no wire form.
type ParamError struct {
	Key  string
	Type string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("telegram: param %q: unsupported type %s", e.Key, e.Type)
}

// ShapeError reports a result whose JSON kind differs from what the caller
// expected. Results are never coerced.
type ShapeError struct {
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("telegram: wrong result shape: want %s, got %s", e.Want, e.Got)
}

func sortedKeys(fields map[string]json.RawMessage) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return strings.Join(keys, " ")
}
