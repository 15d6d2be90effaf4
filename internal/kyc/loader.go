package kyc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/ops-console-service/internal/logging"
	"github.com/preston-bernstein/ops-console-service/internal/metrics"
	"github.com/preston-bernstein/ops-console-service/internal/providers"
)

// Loader populates a Store from a KYCProvider.
type Loader struct {
	provider providers.KYCProvider
	store    *Store
	ruleID   string
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// NewLoader builds a loader that fetches blocking rules for ruleID.
func NewLoader(provider providers.KYCProvider, store *Store, ruleID string, logger *slog.Logger) *Loader {
	return &Loader{provider: provider, store: store, ruleID: ruleID, logger: logger}
}

// WithMetrics reports catalog sizes to rec after each successful fetch.
func (l *Loader) WithMetrics(rec *metrics.Recorder) *Loader {
	l.metrics = rec
	return l
}

// Load runs the three catalog fetches concurrently. Each fetch resolves into its own
// resource; a failure in one is recorded on that resource and never cancels the others.
// The returned error joins every failure.
func (l *Loader) Load(ctx context.Context) error {
	if l.provider == nil {
		return providers.ErrProviderUnavailable
	}

	var (
		g                                      errgroup.Group
		rulesErr, notificationErr, purposesErr error
	)

	l.store.BeginBlockingRules()
	l.store.BeginNotification()
	l.store.BeginPurposes()

	g.Go(func() error {
		start := time.Now()
		rules, err := l.provider.FetchBlockingRules(ctx, l.ruleID)
		l.store.ResolveBlockingRules(rules, err)
		rulesErr = l.report(ctx, resourceBlockingRules, start, len(rules), err)
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		channels, err := l.provider.FetchNotificationChannels(ctx)
		l.store.ResolveNotification(channels, err)
		notificationErr = l.report(ctx, resourceNotification, start, len(channels), err)
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		purposes, err := l.provider.FetchVerificationPurposes(ctx)
		l.store.ResolvePurposes(purposes, err)
		purposesErr = l.report(ctx, resourcePurposes, start, len(purposes), err)
		return nil
	})
	_ = g.Wait()

	return errors.Join(rulesErr, notificationErr, purposesErr)
}

const (
	resourceBlockingRules = "blockingRules"
	resourceNotification  = "notification"
	resourcePurposes      = "verificationPurposes"
)

func (l *Loader) report(ctx context.Context, resource string, start time.Time, count int, err error) error {
	logger := logging.FromContext(ctx, l.logger)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		logging.Error(logger, "kyc resource load failed", err,
			logging.FieldResource, resource,
			logging.FieldDurationMS, elapsed,
		)
		return fmt.Errorf("load %s: %w", resource, err)
	}
	l.metrics.RecordCatalogSize(resource, count)
	logging.Info(logger, "kyc resource loaded",
		logging.FieldResource, resource,
		logging.FieldCount, count,
		logging.FieldDurationMS, elapsed,
	)
	return nil
}
