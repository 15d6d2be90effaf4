package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/ops-console-service/internal/config"
	"github.com/preston-bernstein/ops-console-service/internal/logging"
	"github.com/preston-bernstein/ops-console-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, config.Load(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run builds the server from cfg and blocks until ctx is cancelled.
func run(ctx context.Context, stop context.CancelFunc, cfg config.Config, out io.Writer) error {
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
		Output:  out,
	})

	srv, err := server.New(cfg, logger)
	if err != nil {
		logging.Error(logger, "server setup failed", err)
		return fmt.Errorf("setup: %w", err)
	}
	srv.Run(ctx, stop)
	return nil
}
