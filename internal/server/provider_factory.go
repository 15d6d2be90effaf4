package server

import (
	"log/slog"

	"github.com/preston-bernstein/ops-console-service/internal/config"
	"github.com/preston-bernstein/ops-console-service/internal/metrics"
	"github.com/preston-bernstein/ops-console-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns the wrapped provider and a func that releases the rate limiter's ticker.
func (f providerFactory) build(cfg config.Config) (providers.KYCProvider, func()) {
	base := selectProvider(cfg, f.logger)
	limited := providers.NewRateLimitedProvider(base, cfg.KYC.MinInterval, f.logger)
	closeFn := func() {
		if c, ok := limited.(interface{ Close() }); ok {
			c.Close()
		}
	}
	name := normalizeProviderName(cfg.Provider, base)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, name, cfg.KYC.MaxAttempts, 0), closeFn
}
