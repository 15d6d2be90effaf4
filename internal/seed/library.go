package seed

import (
	"log/slog"
	"sync"
	"time"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/carousel"
	"github.com/preston-bernstein/ops-console-service/internal/logging"
)

// Library holds the seed new carousel sessions start from. It is safe for concurrent use.
type Library struct {
	mu      sync.RWMutex
	entries []domain.Entry
	store   *FSStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewLibrary loads the seed from store, or uses the built-in default when store is nil.
// A seed that fails validation is an error.
func NewLibrary(store *FSStore, logger *slog.Logger) (*Library, error) {
	l := &Library{store: store, logger: logger, now: time.Now}
	if store == nil {
		l.entries = Default()
		return l, nil
	}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Entries returns a copy of the current seed.
func (l *Library) Entries() []domain.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.Entry(nil), l.entries...)
}

// Reload re-reads the seed file. On failure the previous seed stays in place.
func (l *Library) Reload() error {
	if l.store == nil {
		return nil
	}
	entries, err := l.store.Load()
	if err != nil {
		logging.Error(l.logger, "seed load failed", err, "path", l.store.Path())
		return err
	}
	report := Validate(entries, l.now(), nil)
	for _, w := range report.Warnings {
		logging.Warn(l.logger, "seed warning", logging.FieldEntryID, w.EntryID, "issue", w.Message)
	}
	if err := report.Err(); err != nil {
		logging.Error(l.logger, "seed rejected", err, "path", l.store.Path())
		return err
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
	logging.Info(l.logger, "seed loaded", logging.FieldCount, len(entries), "path", l.store.Path())
	return nil
}
