package providers

import (
	"context"
	"log/slog"
	"time"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/kyc"
)

// rateLimitedProvider wraps a KYCProvider and enforces a minimum interval between upstream calls.
type rateLimitedProvider struct {
	next     KYCProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a KYCProvider that spaces calls by the given interval.
// Calls block until the next tick to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next KYCProvider, interval time.Duration, logger *slog.Logger) KYCProvider {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchBlockingRules(ctx context.Context, ruleID string) (map[string]bool, error) {
	if err := p.wait(ctx, "blockingRules"); err != nil {
		return nil, err
	}
	return p.next.FetchBlockingRules(ctx, ruleID)
}

func (p *rateLimitedProvider) FetchNotificationChannels(ctx context.Context) ([]domain.Channel, error) {
	if err := p.wait(ctx, "notification"); err != nil {
		return nil, err
	}
	return p.next.FetchNotificationChannels(ctx)
}

func (p *rateLimitedProvider) FetchVerificationPurposes(ctx context.Context) ([]domain.Purpose, error) {
	if err := p.wait(ctx, "verificationPurposes"); err != nil {
		return nil, err
	}
	return p.next.FetchVerificationPurposes(ctx)
}

// Close stops the underlying ticker.
func (p *rateLimitedProvider) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *rateLimitedProvider) wait(ctx context.Context, resource string) error {
	if p == nil || p.next == nil {
		if p != nil && p.logger != nil {
			p.logger.Warn("provider unavailable", slog.String("provider", "rate-limited"))
		}
		return ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		if p.logger != nil {
			p.logger.Warn("rate-limited fetch canceled", slog.String("provider", "rate-limited"), slog.String("resource", resource))
		}
		return ctx.Err()
	case <-p.ticker.C:
	}
	if p.logger != nil {
		p.logger.Debug("rate-limited provider fetch", slog.String("provider", "rate-limited"), slog.String("resource", resource))
	}
	return nil
}
