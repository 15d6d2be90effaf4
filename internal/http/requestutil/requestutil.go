package requestutil

import (
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// HeaderRequestID carries the correlation id in both directions.
const HeaderRequestID = "X-Request-ID"

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// RequestID returns the caller's X-Request-ID when it is well formed, otherwise a fresh one.
func RequestID(r *http.Request) string {
	if r != nil {
		if id := r.Header.Get(HeaderRequestID); requestIDPattern.MatchString(id) {
			return id
		}
	}
	return NewRequestID()
}

// NewRequestID returns a random dashless UUID.
func NewRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ClientIP prefers the first X-Forwarded-For hop, then the host part of RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// BearerToken returns the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// QueryBool reports whether the query parameter name is set to "1", "true" or "yes".
func QueryBool(r *http.Request, name string) bool {
	if r == nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
