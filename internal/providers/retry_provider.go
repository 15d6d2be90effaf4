package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/kyc"
	"github.com/preston-bernstein/ops-console-service/internal/logging"
	"github.com/preston-bernstein/ops-console-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	defaultMaxBackoff    = 5 * time.Second
	maxRetryAfter        = 30 * time.Second
)

// retryingProvider wraps a KYCProvider with exponential backoff, honouring Retry-After on rate limits.
type retryingProvider struct {
	inner        KYCProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner KYCProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) KYCProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = defaultMaxBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryingProvider) FetchBlockingRules(ctx context.Context, ruleID string) (map[string]bool, error) {
	return retry(ctx, r, "blockingRules", func(ctx context.Context) (map[string]bool, error) {
		return r.inner.FetchBlockingRules(ctx, ruleID)
	})
}

func (r *retryingProvider) FetchNotificationChannels(ctx context.Context) ([]domain.Channel, error) {
	return retry(ctx, r, "notification", func(ctx context.Context) ([]domain.Channel, error) {
		return r.inner.FetchNotificationChannels(ctx)
	})
}

func (r *retryingProvider) FetchVerificationPurposes(ctx context.Context) ([]domain.Purpose, error) {
	return retry(ctx, r, "verificationPurposes", func(ctx context.Context) ([]domain.Purpose, error) {
		return r.inner.FetchVerificationPurposes(ctx)
	})
}

func retry[T any](ctx context.Context, r *retryingProvider, resource string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if r.inner == nil {
		return zero, ErrProviderUnavailable
	}

	policy := &retryAfterBackOff{BackOff: r.newBackOff()}
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)

	op := func() (T, error) {
		start := time.Now()
		val, err := fn(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return val, nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rl.RetryAfter)
			policy.override(rl.RetryAfter)
			return zero, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, backoff.Permanent(fmt.Errorf("%w: %v", ctxErr, err))
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Retryable() {
			return zero, backoff.Permanent(err)
		}
		return zero, err
	}

	attempt := 0
	notify := func(err error, delay time.Duration) {
		attempt++
		r.logWarn(ctx, "provider fetch retry",
			logging.FieldResource, resource,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"err", err,
		)
	}

	val, err := backoff.RetryNotifyWithData(op, b, notify)
	if err != nil {
		r.logWarn(ctx, "provider fetch failed", logging.FieldResource, resource, "err", err)
		return zero, err
	}
	return val, nil
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logProvider(ctx, r.logger, slog.LevelWarn, r.providerName, msg, args...)
}

// retryAfterBackOff lets a rate-limited attempt dictate the next delay once.
type retryAfterBackOff struct {
	backoff.BackOff
	mu      sync.Mutex
	pending time.Duration
}

func (b *retryAfterBackOff) override(d time.Duration) {
	if d <= 0 {
		return
	}
	if d > maxRetryAfter {
		d = maxRetryAfter
	}
	b.mu.Lock()
	b.pending = d
	b.mu.Unlock()
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	b.mu.Lock()
	pending := b.pending
	b.pending = 0
	b.mu.Unlock()

	next := b.BackOff.NextBackOff()
	if next == backoff.Stop || pending <= 0 {
		return next
	}
	return pending
}
