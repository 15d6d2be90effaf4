package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/ops-console-service/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()

	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	body := rr.Body.String()
	if !bytes.Contains([]byte(body), []byte("abc123")) {
		t.Fatalf("expected requestId in body, got %s", body)
	}
	if strings.Contains(body, `"code"`) {
		t.Fatalf("expected code omitted, got %s", body)
	}
}

func TestWriteErrorBodyCarriesCodeAndDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	writeErrorBody(rr, req, http.StatusConflict, errorBody{Error: "nope", Code: "illegal_promotion", Detail: map[string]int{"n": 1}}, nil)

	var body map[string]any
	testutil.DecodeJSON(t, rr, &body)
	if body["code"] != "illegal_promotion" || body["detail"] == nil {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestDecodeBody(t *testing.T) {
	var dest struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	if err := decodeBody(req, &dest); err != nil || dest.Name != "x" {
		t.Fatalf("unexpected decode result %+v err %v", dest, err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	if err := decodeBody(req, &dest); err != nil {
		t.Fatalf("expected empty body accepted, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"other":1}`))
	if err := decodeBody(req, &dest); err == nil {
		t.Fatalf("expected unknown field rejected")
	}
}
