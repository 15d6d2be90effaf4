package server

import (
	"context"

	"github.com/preston-bernstein/ops-console-service/internal/refresher"
)

// Refresher defines the catalog refresh loop the server drives.
type Refresher interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Refresh(ctx context.Context) error
	Status() refresher.Status
}

// seedWatcher reloads the carousel seed when its file changes.
type seedWatcher interface {
	Start(ctx context.Context) error
	Stop() error
}
