package providers

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrProviderUnavailable is returned when a wrapper has no upstream to call.
var ErrProviderUnavailable = errors.New("provider unavailable")

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// StatusError is a non-2xx upstream response other than a rate limit.
type StatusError struct {
	Provider   string
	Resource   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %s: unexpected status %d", e.Provider, e.Resource, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: unexpected status %d: %s", e.Provider, e.Resource, e.StatusCode, e.Body)
}

// Retryable reports whether repeating the request could succeed.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusRequestTimeout
}
