package server

import (
	"log/slog"

	"github.com/preston-bernstein/ops-console-service/internal/config"
	"github.com/preston-bernstein/ops-console-service/internal/logging"
	"github.com/preston-bernstein/ops-console-service/internal/seed"
)

// buildSeed loads the carousel seed. A watcher is returned only for a file-backed seed with
// watching enabled; a watcher that cannot be created is logged and skipped.
func buildSeed(cfg config.Config, logger *slog.Logger) (*seed.Library, seedWatcher, error) {
	var fs *seed.FSStore
	if cfg.Carousel.SeedPath != "" {
		fs = seed.NewFSStore(cfg.Carousel.SeedPath)
	}
	lib, err := seed.NewLibrary(fs, logger)
	if err != nil {
		return nil, nil, err
	}
	if fs == nil || !cfg.Carousel.WatchSeed {
		return lib, nil, nil
	}
	w, err := seed.NewWatcher(cfg.Carousel.SeedPath, lib, logger)
	if err != nil {
		logging.Warn(logger, "seed watcher unavailable", "error", err)
		return lib, nil, nil
	}
	return lib, w, nil
}
