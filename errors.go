package cerebras

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Sentinel errors for API operations. Wrap-aware: test with errors.Is.
var (
	// ErrMissingAPIKey indicates no API key was configured.
	ErrMissingAPIKey = errors.New("API key not configured")

	// ErrAuthentication indicates the API rejected the credentials.
	ErrAuthentication = errors.New("authentication failed")

	// ErrRateLimited indicates the request was rate limited.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrModelNotFound indicates the requested model does not exist.
	ErrModelNotFound = errors.New("model not found")

	// ErrInvalidRequest indicates the request was rejected as malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrServer indicates a server-side failure.
	ErrServer = errors.New("server error")

	// ErrStream indicates the event stream failed mid-flight.
	ErrStream = errors.New("stream error")

	// ErrDecode indicates a stream payload failed structured decoding.
	ErrDecode = errors.New("decode error")
)

// Error wraps API and streaming failures with request context.
type Error struct {
	Op      string // Operation that failed ("chat", "completion", "stream", ...)
	Status  int    // HTTP status code, 0 if the failure was not an HTTP response
	Code    string // API error code, if the response carried one
	Param   string // Offending request parameter, if reported
	Message string // Human-readable description from the API
	Err     error  // Underlying sentinel or transport error

	// RetryAfter is the server-suggested backoff for rate-limited requests.
	RetryAfter time.Duration

	// Retryable reports whether the failure is likely transient.
	Retryable bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error is likely transient and worth retrying.
// The SDK never retries on its own; backoff policy belongs to the caller.
func IsRetryable(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Retryable
	}
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServer)
}

// IsAuthError checks if an error is authentication-related.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthentication) || errors.Is(err, ErrMissingAPIKey)
}

// RetryAfter returns the server-suggested backoff for a rate-limit error,
// or zero when none applies.
func RetryAfter(err error) time.Duration {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.RetryAfter
	}
	return 0
}

// apiErrorEnvelope is the JSON error body returned on non-2xx responses.
type apiErrorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Param   string `json:"param"`
		Code    string `json:"code"`
	} `json:"error"`

	// Some error responses put the fields at the top level.
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

const maxErrorBodyBytes = 1 << 20

// errorFromResponse maps a non-2xx HTTP response to an *Error. It consumes at
// most maxErrorBodyBytes of the body and does not close it.
func errorFromResponse(op string, resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	apiErr := &Error{Op: op, Status: resp.StatusCode}

	var env apiErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != nil {
			apiErr.Message = env.Error.Message
			apiErr.Code = env.Error.Code
			apiErr.Param = env.Error.Param
		} else {
			apiErr.Message = env.Message
			apiErr.Code = env.Code
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		apiErr.Err = ErrAuthentication
	case resp.StatusCode == http.StatusNotFound:
		if apiErr.Code == "model_not_found" {
			apiErr.Err = ErrModelNotFound
		} else {
			apiErr.Err = ErrNotFound
		}
	case resp.StatusCode == http.StatusTooManyRequests:
		apiErr.Err = ErrRateLimited
		apiErr.Retryable = true
		apiErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	case resp.StatusCode >= 500:
		apiErr.Err = ErrServer
		apiErr.Retryable = true
	default:
		apiErr.Err = ErrInvalidRequest
	}

	return apiErr
}

// parseRetryAfter handles the delay-seconds form of the Retry-After header.
// The HTTP-date form is rare on rate limits and treated as absent.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
