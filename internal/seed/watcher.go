package seed

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/preston-bernstein/ops-console-service/internal/logging"
)

const defaultDebounce = 250 * time.Millisecond

// Reloader is anything that can re-read its seed.
type Reloader interface {
	Reload() error
}

// Watcher reloads the seed when its file changes. The parent directory is watched so
// editors that replace the file atomically are still picked up.
type Watcher struct {
	path     string
	target   Reloader
	logger   *slog.Logger
	debounce time.Duration

	watcher *fsnotify.Watcher
	done    chan struct{}
	stopped chan struct{}

	mu      sync.Mutex
	started bool
	reloads int
}

// NewWatcher creates a watcher for path that reloads target.
func NewWatcher(path string, target Reloader, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     filepath.Clean(path),
		target:   target,
		logger:   logger,
		debounce: defaultDebounce,
		watcher:  fw,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Start begins watching until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		close(w.stopped)
		return err
	}
	go w.run(ctx)
	logging.Info(w.logger, "seed watcher started", "path", w.path)
	return nil
}

// Stop halts the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	started := w.started
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	w.mu.Unlock()

	if started {
		<-w.stopped
	}
	return w.watcher.Close()
}

// Reloads returns how many reloads the watcher has triggered.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.stopped)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || !relevant(event.Op) {
				logging.Debug(w.logger, "seed watcher ignored event", "name", event.Name, "op", event.Op.String())
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Error(w.logger, "seed watcher error", err)
		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	err := w.target.Reload()
	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()
	if err != nil {
		logging.Warn(w.logger, "seed reload kept previous seed", "error", err)
		return
	}
	logging.Info(w.logger, "seed reloaded", "path", w.path)
}

func relevant(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}
