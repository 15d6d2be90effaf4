package requestutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestID(t *testing.T) {
	cases := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "valid passes through", header: "valid-123", keep: true},
		{name: "spaces rejected", header: "bad id"},
		{name: "too long rejected", header: strings.Repeat("a", 65)},
		{name: "missing generated", header: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(HeaderRequestID, tc.header)
			got := RequestID(req)
			if tc.keep && got != tc.header {
				t.Fatalf("expected pass-through, got %s", got)
			}
			if !tc.keep && (got == tc.header || len(got) != 32) {
				t.Fatalf("expected generated 32-char id, got %q", got)
			}
		})
	}
	if RequestID(nil) == "" {
		t.Fatalf("expected generated id for nil request")
	}
	if NewRequestID() == NewRequestID() {
		t.Fatalf("expected unique ids")
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if got := ClientIP(req); got != "1.2.3.4" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	if got := ClientIP(req); got != "9.9.9.9" {
		t.Fatalf("expected remote host fallback, got %s", got)
	}

	req.RemoteAddr = "pipe"
	if got := ClientIP(req); got != "pipe" {
		t.Fatalf("expected raw remote addr when unparsable, got %s", got)
	}
}

func TestBearerToken(t *testing.T) {
	if got := BearerToken(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}
	cases := map[string]string{
		"Bearer secret":  "secret",
		"bearer  spaced": "spaced",
		"Basic abc":      "",
		"Bearer":         "",
		"":               "",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		if got := BearerToken(req); got != want {
			t.Fatalf("BearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestQueryBool(t *testing.T) {
	if QueryBool(nil, "force") {
		t.Fatalf("expected false for nil request")
	}
	for query, want := range map[string]bool{"?force=true": true, "?force=1": true, "?force=YES": true, "?force=no": false, "": false} {
		req := httptest.NewRequest(http.MethodDelete, "/x"+query, nil)
		if got := QueryBool(req, "force"); got != want {
			t.Fatalf("QueryBool(%q) = %v, want %v", query, got, want)
		}
	}
}
