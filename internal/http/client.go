// Package http implements the transport executor: it performs the HTTP
// exchange against the ERS API with authentication, timeout, and the
// retry/backoff policy.
package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/netpolicy-io/ise-client/internal/auth"
	"github.com/netpolicy-io/ise-client/internal/constants"
	"github.com/netpolicy-io/ise-client/pkg/ise"
)

// Logger interface for HTTP client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents a single HTTP exchange to perform. The request
// builder fills RawBody and ContentType for encoded payloads; Body is a
// convenience for plain JSON calls and is marshaled when RawBody is nil.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Headers     map[string]string
	Body        any
	RawBody     []byte
	ContentType string
}

// Response is the raw result of one exchange.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes the retry policy.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retry.RetryMax = retryMax
		c.retry.RetryWaitMin = waitMin
		c.retry.RetryWaitMax = waitMax
	}
}

// WithRetryBudget caps the total elapsed time across attempts.
func WithRetryBudget(budget time.Duration) Option {
	return func(c *Client) {
		c.retryBudget = budget
	}
}

// WithRetryNonIdempotent opts in to retrying POST requests. Off by
// default: a blind retry of a create risks duplicate side effects.
func WithRetryNonIdempotent(allow bool) Option {
	return func(c *Client) {
		c.retryNonIdempotent = allow
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.retry.HTTPClient.Timeout = timeout
	}
}

// WithSkipTLSVerify disables TLS certificate verification.
func WithSkipTLSVerify(skip bool) Option {
	return func(c *Client) {
		if skip {
			c.retry.HTTPClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // lab deployments with self-signed certs
			}
		}
	}
}

// WithCSRF enables X-CSRF-TOKEN handling for mutating requests.
func WithCSRF(enabled bool) Option {
	return func(c *Client) {
		c.usesCSRF = enabled
	}
}

// Client executes HTTP exchanges with authentication and retries. Safe
// for concurrent use; the only shared mutable state is the underlying
// connection pool and the cached CSRF token.
type Client struct {
	baseURL    string
	credential auth.Credential
	retry      *retryablehttp.Client

	retryBudget        time.Duration
	retryNonIdempotent bool
	usesCSRF           bool

	csrfMu    sync.Mutex
	csrfToken string

	logger    Logger
	debug     bool
	userAgent string
}

type ctxKey int

const attemptStateKey ctxKey = 0

// attemptState lives for the duration of one logical call's retry loop.
type attemptState struct {
	mu       sync.Mutex
	attempts int
	start    time.Time
	method   string
}

func (s *attemptState) bump() {
	s.mu.Lock()
	s.attempts++
	s.mu.Unlock()
}

func (s *attemptState) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.attempts
}

// NewClient creates a transport executor for the given base URL and
// credential.
func NewClient(baseURL string, credential auth.Credential, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		credential: credential,
		retry:      retryablehttp.NewClient(),
		userAgent:  "ise-client/1.0",
	}

	client.retry.Logger = nil
	client.retry.RetryMax = constants.DefaultRetryMax
	client.retry.RetryWaitMin = constants.DefaultRetryWaitMin
	client.retry.RetryWaitMax = constants.DefaultRetryWaitMax
	client.retry.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	client.retry.Backoff = retryBackoff
	client.retry.CheckRetry = client.checkRetry
	client.retry.RequestLogHook = client.requestHook
	client.retry.ErrorHandler = retryablehttp.PassthroughErrorHandler

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// DoURL performs a request against an absolute URL, used by the
// pagination walker when the server hands back next-page links.
func (c *Client) DoURL(ctx context.Context, method, absolute string) (*Response, error) {
	parsed, err := url.Parse(absolute)
	if err != nil {
		return nil, fmt.Errorf("parsing next-page URL: %w", err)
	}

	return c.Do(ctx, &Request{Method: method, Path: parsed.Path, Query: parsed.Query()})
}

// Do executes the request with the configured retry policy. Every retry
// attempt is a fresh request; the prior attempt is never mutated. For
// non-2xx statuses Do returns both the raw response and a typed error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	rawBody, contentType, err := c.encodeBody(req)
	if err != nil {
		return nil, err
	}

	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	state := &attemptState{start: time.Now(), method: req.Method}
	ctx = context.WithValue(ctx, attemptStateKey, state)

	// The budget is a hard ceiling on the whole retry loop, so it has to
	// bound in-flight attempts and backoff sleeps too, not only the
	// decision points between attempts.
	if c.retryBudget > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithDeadline(ctx, state.start.Add(c.retryBudget))
		defer cancel()
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	c.applyHeaders(httpReq, req, contentType)

	if c.usesCSRF && isMutating(req.Method) && req.Path != constants.VersionInfoPath {
		token, csrfErr := c.ensureCSRF(ctx)
		if csrfErr != nil {
			return nil, csrfErr
		}

		httpReq.Header.Set(constants.CSRFHeader, token)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
			"auth":   c.describeCredential(),
		})
	}

	resp, err := c.retry.Do(httpReq)
	if err != nil {
		return nil, c.classifyFailure(err, state)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ise.TransportError{Op: "reading response body", Err: err}
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
			"attempts":    state.count(),
			"elapsed":     time.Since(state.start).String(),
		})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return response, c.statusError(response, state)
	}

	return response, nil
}

// encodeBody resolves the wire body for the request.
func (c *Client) encodeBody(req *Request) ([]byte, string, error) {
	if req.RawBody != nil {
		contentType := req.ContentType
		if contentType == "" {
			contentType = "application/json"
		}

		return req.RawBody, contentType, nil
	}

	if req.Body == nil {
		return nil, "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling request body: %w", err)
	}

	return data, "application/json", nil
}

func (c *Client) applyHeaders(httpReq *retryablehttp.Request, req *Request, contentType string) {
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		// Content-Type is fixed by the chosen body encoding.
		if strings.EqualFold(key, "Content-Type") && contentType != "" {
			continue
		}

		httpReq.Header.Set(key, value)
	}

	if c.credential != nil {
		c.credential.Apply(httpReq.Request)
	}
}

// requestHook runs before every attempt: it counts the attempt and tags
// it with a fresh correlation ID.
func (c *Client) requestHook(_ retryablehttp.Logger, req *http.Request, attempt int) {
	req.Header.Set(constants.RequestIDHeader, uuid.NewString())

	if state, ok := req.Context().Value(attemptStateKey).(*attemptState); ok {
		state.bump()
	}

	if c.debug && c.logger != nil && attempt > 0 {
		c.logger.Debug("HTTP Retry", map[string]interface{}{
			"method":  req.Method,
			"path":    req.URL.Path,
			"attempt": attempt + 1,
		})
	}
}

// retryBackoff spreads the exponential wait with full jitter so
// concurrent callers hitting the same overloaded server don't retry in
// lockstep. A parseable Retry-After on 429/503 takes precedence.
func retryBackoff(waitMin, waitMax time.Duration, attemptNum int, resp *http.Response) time.Duration {
	wait := retryablehttp.DefaultBackoff(waitMin, waitMax, attemptNum, resp)

	if resp != nil && resp.Header.Get("Retry-After") != "" &&
		(resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable) {
		return wait
	}

	if wait > waitMin {
		wait = waitMin + time.Duration(rand.Int63n(int64(wait-waitMin)+1)) //nolint:gosec // backoff jitter, not a secret
	}

	return wait
}

// checkRetry implements the retry policy: transient conditions only, POST
// excluded unless explicitly allowed, bounded by the elapsed-time budget.
func (c *Client) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if state, ok := ctx.Value(attemptStateKey).(*attemptState); ok {
		if c.retryBudget > 0 && time.Since(state.start) >= c.retryBudget {
			return false, nil
		}

		// A create may have taken effect even when the connection
		// dropped, so POST is excluded from retry unless opted in.
		if state.method == http.MethodPost && !c.retryNonIdempotent {
			return false, nil
		}
	}

	if err != nil {
		// Connection-level failures; delegate the non-recoverable
		// subset (TLS verification, too many redirects) to the default
		// policy.
		retry, _ := retryablehttp.DefaultRetryPolicy(ctx, resp, err)

		return retry, nil
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return true, nil
	}

	return false, nil
}

// classifyFailure turns a transport-level failure into the error
// taxonomy, wrapping with attempt diagnostics when retries were spent.
func (c *Client) classifyFailure(err error, state *attemptState) error {
	elapsed := time.Since(state.start)

	var classified error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		classified = &ise.TimeoutError{Op: "http request", Elapsed: elapsed, Err: err}
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("request canceled: %w", err)
	case isTimeout(err):
		classified = &ise.TimeoutError{Op: "http request", Elapsed: elapsed, Err: err}
	default:
		classified = &ise.TransportError{Op: "http request", Err: err}
	}

	if state.count() > 1 {
		return &ise.RetryError{Attempts: state.count(), Elapsed: elapsed, Err: classified}
	}

	return classified
}

// statusError builds the typed error for a non-2xx response.
func (c *Client) statusError(resp *Response, state *attemptState) error {
	apiErr := &ise.APIError{StatusCode: resp.StatusCode, Raw: resp.Body}

	if envelope, err := ise.ParseERSResponse(resp.Body); err == nil && envelope != nil {
		apiErr.Envelope = envelope
	}

	if apiErr.Retryable() && state.count() > 1 {
		return &ise.RetryError{
			Attempts: state.count(),
			Elapsed:  time.Since(state.start),
			Err:      apiErr,
		}
	}

	return apiErr
}

// ensureCSRF fetches the CSRF token once and caches it for the client's
// lifetime.
func (c *Client) ensureCSRF(ctx context.Context) (string, error) {
	c.csrfMu.Lock()
	defer c.csrfMu.Unlock()

	if c.csrfToken != "" {
		return c.csrfToken, nil
	}

	resp, err := c.Do(ctx, &Request{
		Method:  http.MethodGet,
		Path:    constants.VersionInfoPath,
		Headers: map[string]string{constants.CSRFHeader: constants.CSRFFetchValue},
	})
	if err != nil {
		return "", fmt.Errorf("fetching CSRF token: %w", err)
	}

	token := resp.Headers.Get("X-CSRF-Token")
	if token == "" {
		token = resp.Headers.Get(constants.CSRFHeader)
	}

	c.csrfToken = token

	return token, nil
}

func (c *Client) describeCredential() string {
	if c.credential == nil {
		return "none"
	}

	return c.credential.Describe()
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }

	return errors.As(err, &netErr) && netErr.Timeout()
}
