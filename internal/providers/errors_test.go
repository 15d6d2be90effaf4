package providers

import (
	"fmt"
	"strings"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestStatusErrorRetryable(t *testing.T) {
	cases := map[int]bool{500: true, 503: true, 408: true, 404: false, 400: false}
	for code, want := range cases {
		err := &StatusError{Provider: "kycapi", Resource: "notification", StatusCode: code}
		if got := err.Retryable(); got != want {
			t.Fatalf("status %d: expected retryable=%v", code, want)
		}
	}
}

func TestStatusErrorIncludesBody(t *testing.T) {
	err := &StatusError{Provider: "kycapi", Resource: "notification", StatusCode: 502, Body: "bad gateway"}
	if !strings.Contains(err.Error(), "bad gateway") || !strings.Contains(err.Error(), "502") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
