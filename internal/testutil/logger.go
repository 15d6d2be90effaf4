package testutil

import (
	"bytes"
	"log/slog"

	"github.com/preston-bernstein/ops-console-service/internal/logging"
)

// NewBufferLogger returns a debug-level text logger writing to the returned buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{
		Level:   "debug",
		Format:  "text",
		Service: "test",
		Output:  &buf,
	})
	return logger, &buf
}
