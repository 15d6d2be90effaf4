package refresher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/ops-console-service/internal/logging"
	"github.com/preston-bernstein/ops-console-service/internal/metrics"
)

const defaultInterval = 5 * time.Minute

// Loader reloads the KYC catalog.
type Loader interface {
	Load(ctx context.Context) error
}

// Refresher reloads the KYC catalog on an interval and on demand.
type Refresher struct {
	loader   Loader
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	// serialises ticker-driven and manual refreshes
	loadMu sync.Mutex

	ticker   *time.Ticker
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
}

// IsReady reports whether the catalog has loaded at least once and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Refresher. A non-positive interval falls back to the default.
func New(loader Loader, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Refresher{
		loader:   loader,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start loads the catalog immediately and then on every tick until ctx is cancelled or Stop
// is called.
func (r *Refresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.ticker = time.NewTicker(r.interval)

	go func() {
		defer close(r.stopped)
		defer r.ticker.Stop()
		logging.Info(r.logger, "refresher started", logging.FieldDurationMS, r.interval.Milliseconds())
		_ = r.Refresh(ctx)

		for {
			select {
			case <-ctx.Done():
				logging.Info(r.logger, "refresher stopped")
				return
			case <-r.done:
				logging.Info(r.logger, "refresher stopped")
				return
			case <-r.ticker.C:
				_ = r.Refresh(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for it to exit or for ctx to expire.
func (r *Refresher) Stop(ctx context.Context) error {
	r.stopOnce.Do(func() {
		close(r.done)
	})

	r.startMu.Lock()
	started := r.started
	r.startMu.Unlock()
	if !started {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-r.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh runs one load now and records the outcome.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	start := r.now()
	r.recordAttempt(start)
	err := r.loader.Load(ctx)
	elapsed := time.Since(start)
	r.metrics.RecordRefreshCycle(elapsed, err)
	if err != nil {
		logging.Error(r.logger, "kyc refresh failed", err, logging.FieldDurationMS, elapsed.Milliseconds())
		r.recordFailure(err)
		return err
	}
	r.recordSuccess(start)
	logging.Info(r.logger, "kyc catalog refreshed", logging.FieldDurationMS, elapsed.Milliseconds())
	return nil
}

// Status returns a snapshot of the refresher's recent health.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

func (r *Refresher) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Refresher) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Refresher) recordFailure(err error) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	r.status.LastError = err.Error()
}
