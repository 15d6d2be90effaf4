package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestHelpersAreNilSafe(t *testing.T) {
	Debug(nil, "debug")
	Info(nil, "info")
	Warn(nil, "warn")
	Error(nil, "error", errors.New("boom"))
}

func TestErrorAppendsErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Output: &buf})

	Error(logger, "load failed", errors.New("boom"), FieldResource, "notification")

	out := buf.String()
	if !strings.Contains(out, "error=boom") || !strings.Contains(out, "resource=notification") {
		t.Fatalf("expected error and resource fields, got %q", out)
	}
}

func TestErrorWithoutErrOmitsField(t *testing.T) {
	var buf bytes.Buffer
	Error(NewLogger(Config{Output: &buf}), "plain", nil)
	if strings.Contains(buf.String(), "error=") {
		t.Fatalf("expected no error field, got %q", buf.String())
	}
}

func TestDebugHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	Debug(NewLogger(Config{Output: &buf}), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug suppressed at info level, got %q", buf.String())
	}

	Debug(NewLogger(Config{Output: &buf, Level: "debug"}), "shown")
	if !strings.Contains(buf.String(), "msg=shown") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}
