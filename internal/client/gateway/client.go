package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/syspark/internal/common"
	"github.com/dmitrijs2005/syspark/internal/logging"
	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

// Client performs single-attempt JSON calls against the SysPark API and
// classifies every outcome into a Result.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the per-call timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New constructs a Client for the API rooted at base (for example
// "http://localhost:8080"). A missing scheme defaults to http.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", base)
	}

	c := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Request describes one call. Path is relative to /api.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Token  string
}

// Result is the outcome of Do: either Success with the raw body in Data, or
// a failure Kind with the underlying cause in Err.
type Result struct {
	Success bool
	Status  int
	Data    json.RawMessage
	Kind    ErrorKind
	Err     error
}

// AsError converts a failed Result into an *Error; nil on success.
func (r Result) AsError() error {
	if r.Success {
		return nil
	}
	return &Error{Kind: r.Kind, Status: r.Status, Err: r.Err}
}

// Decode unmarshals Data into v. Malformed payloads are unclassified failures.
func (r Result) Decode(v any) error {
	if !r.Success {
		return r.AsError()
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return &Error{Kind: KindUnclassified, Status: r.Status, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// Do performs req exactly once.
func (c *Client) Do(ctx context.Context, req Request) Result {
	requestID := uuid.NewString()
	log := c.log.With("request_id", requestID, "method", req.Method, "path", req.Path)

	endpoint := c.baseURL + common.APIPrefix + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return Result{Kind: KindUnclassified, Err: fmt.Errorf("encode request body: %w", err)}
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return Result{Kind: KindUnclassified, Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(req.Token); token != "" {
		httpReq.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Error(ctx, "api unreachable", "error", err)
		return Result{Kind: KindTransportUnreachable, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(ctx, "reading api response failed", "status", resp.StatusCode, "error", err)
		return Result{Status: resp.StatusCode, Kind: KindTransportUnreachable, Err: err}
	}

	kind := classifyStatus(resp.StatusCode)
	log.Debug(ctx, "api call", "status", resp.StatusCode, "kind", kind, "elapsed", time.Since(started))

	if kind != KindNone {
		return Result{Status: resp.StatusCode, Kind: kind, Data: data}
	}
	return Result{Success: true, Status: resp.StatusCode, Data: data}
}

func classifyStatus(status int) ErrorKind {
	switch {
	case status >= 200 && status < 300:
		return KindNone
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusUnprocessableEntity:
		return KindConflict
	case status == http.StatusNotFound:
		return KindNotFound
	default:
		return KindUnclassified
	}
}
