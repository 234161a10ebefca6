package ise

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ERSMessage is one entry of the ERS error envelope.
type ERSMessage struct {
	Title string `json:"title" yaml:"title"`
	Type  string `json:"type"  yaml:"type"`
	Code  string `json:"code"  yaml:"code"`
}

// ERSResponse is the error envelope returned by the ERS API.
type ERSResponse struct {
	Operation string       `json:"operation"      yaml:"operation"`
	Messages  []ERSMessage `json:"messages"       yaml:"messages"`
	Link      *Link        `json:"link,omitempty" yaml:"link,omitempty"`
}

type ersEnvelope struct {
	ERSResponse ERSResponse `json:"ERSResponse"`
}

// APIError represents a non-2xx response with a decodable error envelope.
// Raw always carries the response bytes even when the envelope parsed.
type APIError struct {
	StatusCode int
	Envelope   *ERSResponse
	Raw        []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Envelope != nil && len(e.Envelope.Messages) > 0 {
		msg := e.Envelope.Messages[0]

		return fmt.Sprintf("ISE API error %d: %s (%s)", e.StatusCode, msg.Title, msg.Code)
	}

	return fmt.Sprintf("ISE API error %d", e.StatusCode)
}

// Retryable reports whether the status belongs to the transient subset.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// ValidationError reports a schema check failure on outgoing parameters or
// an incoming response body. Failures lists every failing path with the
// expected vs. actual shape.
type ValidationError struct {
	SchemaID string
	Failures []string
	// Incoming is true when a response body failed validation. The raw
	// response is then attached in Raw and never silently dropped.
	Incoming bool
	Raw      []byte
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	direction := "request"
	if e.Incoming {
		direction = "response"
	}

	return fmt.Sprintf("%s failed schema %q: %s", direction, e.SchemaID, strings.Join(e.Failures, "; "))
}

// TransportError reports a connection-level failure before any response
// was received. Always retryable per policy.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TimeoutError reports that an attempt exceeded its configured deadline.
type TimeoutError struct {
	Op      string
	Elapsed time.Duration
	Err     error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s: %v", e.Op, e.Elapsed, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// DecodeError reports a response body that is present but unparsable
// against the expected content type. Not retried: retrying will not change
// a malformed body.
type DecodeError struct {
	ContentType string
	Raw         []byte
	Err         error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("undecodable %s body (%d bytes): %v", e.ContentType, len(e.Raw), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RetryError wraps the last observed error after the retry budget is
// spent, carrying attempt count and elapsed time for diagnostics.
type RetryError struct {
	Attempts int
	Elapsed  time.Duration
	Err      error
}

// Error implements the error interface.
func (e *RetryError) Error() string {
	return fmt.Sprintf("giving up after %d attempt(s) in %s: %v", e.Attempts, e.Elapsed, e.Err)
}

func (e *RetryError) Unwrap() error { return e.Err }

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 from the API.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 from the API.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsRateLimited checks if the error is a 429 from the API.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

// IsValidation checks if the error is a schema validation failure.
func IsValidation(err error) bool {
	target := &ValidationError{}

	return errors.As(err, &target)
}

// IsRetryExhausted checks if the error wraps a spent retry budget.
func IsRetryExhausted(err error) bool {
	target := &RetryError{}

	return errors.As(err, &target)
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}

	return false
}

// ParseERSResponse parses an ERS error envelope from JSON. Returns nil
// without error when the body does not carry the envelope.
func ParseERSResponse(data []byte) (*ERSResponse, error) {
	var env ersEnvelope

	err := json.Unmarshal(data, &env)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal ERS response: %w", err)
	}

	if env.ERSResponse.Operation == "" && len(env.ERSResponse.Messages) == 0 {
		return nil, nil //nolint:nilnil // absence of the envelope is not an error
	}

	return &env.ERSResponse, nil
}
