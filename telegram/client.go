package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edouard/telewire/internal/platform"
)

const (
	DefaultBaseURL  = "https://api.telegram.org"
	DefaultAttempts = 3
	DefaultBackoff  = 2 * time.Second
)

// DefaultTimeouts apply to every request that does not set its own.
var DefaultTimeouts = Timeouts{
	Connect: 10 * time.Second,
	Read:    30 * time.Second,
	Total:   60 * time.Second,
}

var validate = validator.New()

// httpDo is a package-level variable for testability.
var httpDo = func(client *http.Client, req *http.Request) (*http.Response, error) {
	return client.Do(req)
}

// retryFn wraps platform.Retry for testability.
var retryFn = platform.Retry

// Options configure a Client.
type Options struct {
	BaseURL  string `validate:"required,url"`
	Timeouts Timeouts
	Attempts int           `validate:"min=1"`
	Backoff  time.Duration `validate:"gte=0"`

	// HTTPClient is cloned, never mutated. Its transport gets the per-call
	// connect timeout when it is an *http.Transport (or nil).
	HTTPClient *http.Client `validate:"-"`
}

// Option mutates Options before validation.
type Option func(*Options)

// WithBaseURL points the client at a local Bot API server or a test server.
func WithBaseURL(u string) Option { return func(o *Options) { o.BaseURL = u } }

// WithTimeouts replaces the default per-attempt timeouts.
func WithTimeouts(t Timeouts) Option { return func(o *Options) { o.Timeouts = t } }

// WithAttempts sets the default attempt budget.
func WithAttempts(n int) Option { return func(o *Options) { o.Attempts = n } }

// WithBackoff sets the fixed delay between timed-out attempts.
func WithBackoff(d time.Duration) Option { return func(o *Options) { o.Backoff = d } }

// WithHTTPClient supplies the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option { return func(o *Options) { o.HTTPClient = hc } }

// Exchange is the diagnostic record of the most recent call.
type Exchange struct {
	Method string
	// URL has the bot token redacted.
	URL string
	// Request is the flattened JSON body; for multipart calls only the
	// non-file fields are recorded.
	Request  []byte
	Response []byte
	Result   json.RawMessage
	Err      error
}

// Client is an HTTP client for the Telegram Bot API.
//
// Calls are synchronous. A Client may be shared between goroutines, but the
// diagnostic slot returned by LastExchange is last-write-wins: with
// concurrent callers it reflects whichever call finished last.
type Client struct {
	baseURL string
	fileURL string

	// redacted and redactedFile stand in for baseURL and fileURL in
	// diagnostics and errors.
	redacted     string
	redactedFile string

	httpClient *http.Client
	opts       Options

	// sleep waits between retries; nil means a context-aware timer.
	sleep func(context.Context, time.Duration) error

	mu   sync.Mutex
	last Exchange
}

// NewClient creates a new Telegram Bot API client.
func NewClient(token string, opts ...Option) (*Client, error) {
	o := Options{
		BaseURL:  DefaultBaseURL,
		Timeouts: DefaultTimeouts,
		Attempts: DefaultAttempts,
		Backoff:  DefaultBackoff,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := validate.Var(token, "required"); err != nil {
		return nil, fmt.Errorf("telegram: new client: token: %w", err)
	}
	if err := validate.Struct(o); err != nil {
		return nil, fmt.Errorf("telegram: new client: %w", err)
	}

	base := strings.TrimRight(o.BaseURL, "/")
	return &Client{
		baseURL:      base + "/bot" + token + "/",
		fileURL:      base + "/file/bot" + token + "/",
		redacted:     base + "/bot<redacted>/",
		redactedFile: base + "/file/bot<redacted>/",
		httpClient:   newHTTPClient(o.HTTPClient),
		opts:         o,
	}, nil
}

// LastExchange returns the record of the most recent call.
func (c *Client) LastExchange() Exchange {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Client) record(ex Exchange) {
	c.mu.Lock()
	c.last = ex
	c.mu.Unlock()
}

// Do sends req and returns the raw result member of a successful response.
//
// req.Attempts of zero means the client's configured attempt count; any
// other value below one fails with ErrInvalidAttempts before anything is
// sent.
//
// Only timeouts are retried, with a fixed backoff, up to the attempt budget;
// any other transport error is returned at once. A response with ok=false
// becomes an *Error carrying the server's code, description and parameters;
// a body that is not JSON becomes an *Error with code 0.
func (c *Client) Do(ctx context.Context, req *Request) (json.RawMessage, error) {
	attempts := req.Attempts
	if attempts == 0 {
		attempts = c.opts.Attempts
	}
	if attempts < 1 {
		return nil, fmt.Errorf("telegram: %s: %w", req.Method, ErrInvalidAttempts)
	}

	fields, err := req.Body()
	if err != nil {
		return nil, err
	}
	record, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("telegram: %s: marshal: %w", req.Method, err)
	}
	payload, contentType, err := req.encode(fields, record)
	if err != nil {
		return nil, fmt.Errorf("telegram: %s: %w", req.Method, err)
	}

	ex := Exchange{Method: req.Method, URL: c.redacted + req.Method, Request: record}

	timeouts := req.Timeouts.orDefault(c.opts.Timeouts)
	policy := platform.RetryPolicy{
		Attempts: attempts,
		Delay:    c.opts.Backoff,
		Retryable: func(err error) bool {
			return ctx.Err() == nil && IsTimeout(err)
		},
		Sleep: c.sleep,
	}

	var body []byte
	err = retryFn(ctx, policy, func(attempt int) error {
		slog.Debug("telegram API POST",
			"component", "telegram",
			"operation", req.Method,
			"attempt", attempt,
			"multipart", req.Files.Len() > 0,
		)
		var sendErr error
		body, sendErr = c.send(ctx, req.Method, contentType, payload, timeouts)
		return sendErr
	})
	if err != nil {
		err = fmt.Errorf("telegram: %s: %w", req.Method, err)
		ex.Err = err
		c.record(ex)
		return nil, err
	}

	ex.Response = body
	result, err := decodeEnvelope(req.Method, body)
	ex.Result, ex.Err = result, err
	c.record(ex)
	if err != nil {
		slog.Debug("telegram API error", "component", "telegram", "operation", req.Method, "error", err)
		return nil, err
	}
	return result, nil
}

// send performs one attempt.
func (c *Client) send(ctx context.Context, method, contentType string, payload []byte, t Timeouts) ([]byte, error) {
	attemptCtx := ctx
	if t.Total > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(attemptCtx, t.Total)
		defer cancel()
	}
	if t.Connect > 0 {
		attemptCtx = context.WithValue(attemptCtx, connectTimeoutKey{}, t.Connect)
	}
	if t.Read > 0 {
		var cancel context.CancelCauseFunc
		attemptCtx, cancel = context.WithCancelCause(attemptCtx)
		defer cancel(nil)

		var timer atomic.Pointer[time.Timer]
		defer func() {
			if tm := timer.Load(); tm != nil {
				tm.Stop()
			}
		}()
		attemptCtx = httptrace.WithClientTrace(attemptCtx, &httptrace.ClientTrace{
			WroteRequest: func(httptrace.WroteRequestInfo) {
				tm := time.AfterFunc(t.Read, func() { cancel(ErrReadTimeout) })
				if old := timer.Swap(tm); old != nil {
					old.Stop()
				}
			},
		})
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.baseURL+method, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", redact(err, c.redacted+method))
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := httpDo(c.httpClient, httpReq)
	if err != nil {
		return nil, withCause(attemptCtx, redact(err, c.redacted+method))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", withCause(attemptCtx, err))
	}
	return respBody, nil
}

// redact replaces the URL embedded in a transport error, which carries the
// bot token, with shown.
func redact(err error, shown string) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = shown
	}
	return err
}

// withCause surfaces ErrReadTimeout when the read timer cancelled the attempt.
func withCause(ctx context.Context, err error) error {
	if cause := context.Cause(ctx); errors.Is(cause, ErrReadTimeout) && !errors.Is(err, ErrReadTimeout) {
		return fmt.Errorf("%w: %w", ErrReadTimeout, err)
	}
	return err
}

// IsTimeout reports whether err is a transport timeout: a dial or I/O
// timeout, an expired attempt deadline, or an expired read timer.
func IsTimeout(err error) bool {
	if errors.Is(err, ErrReadTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// envelope is the generic Bot API response wrapper.
type envelope struct {
	Ok          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result"`
	ErrorCode   int                 `json:"error_code"`
	Description string              `json:"description"`
	Parameters  *ResponseParameters `json:"parameters"`
}

func decodeEnvelope(method string, body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, invalidResponse(method, body)
	}
	if !env.Ok {
		return nil, &Error{
			Method:      method,
			Code:        env.ErrorCode,
			Description: env.Description,
			Parameters:  env.Parameters,
		}
	}
	return env.Result, nil
}

type connectTimeoutKey struct{}

func newHTTPClient(base *http.Client) *http.Client {
	client := &http.Client{}
	if base != nil {
		clone := *base
		client = &clone
	}

	var tr *http.Transport
	switch t := client.Transport.(type) {
	case nil:
		tr = http.DefaultTransport.(*http.Transport).Clone()
	case *http.Transport:
		tr = t.Clone()
	default:
		return client
	}
	dial := tr.DialContext
	if dial == nil {
		dial = (&net.Dialer{KeepAlive: 30 * time.Second}).DialContext
	}
	tr.DialContext = dialWithConnectTimeout(dial)
	client.Transport = tr
	return client
}

// dialWithConnectTimeout applies the attempt's connect timeout, carried in
// the dial context, to the underlying dialer.
func dialWithConnectTimeout(dial func(context.Context, string, string) (net.Conn, error)) func(context.Context, string, string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		if d, ok := ctx.Value(connectTimeoutKey{}).(time.Duration); ok && d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return dial(ctx, network, addr)
	}
}
