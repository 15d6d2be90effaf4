package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/ops-console-service/internal/logging"
)

// logProvider logs through the request-scoped logger when ctx carries one,
// falling back to logger. Every line is tagged with the provider name.
func logProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	if logger == nil || !logger.Enabled(ctx, level) {
		return
	}
	logger.Log(ctx, level, msg, append(args, slog.String(logging.FieldProvider, provider))...)
}
