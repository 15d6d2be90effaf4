package server

import (
	"log/slog"

	"github.com/preston-bernstein/ops-console-service/internal/config"
	"github.com/preston-bernstein/ops-console-service/internal/logging"
	"github.com/preston-bernstein/ops-console-service/internal/providers"
	"github.com/preston-bernstein/ops-console-service/internal/providers/fixture"
	"github.com/preston-bernstein/ops-console-service/internal/providers/kycapi"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.KYCProvider {
	switch cfg.Provider {
	case "fixture", "":
		if cfg.KYC.FixturePath == "" {
			return fixture.New()
		}
		p, err := fixture.Load(cfg.KYC.FixturePath)
		if err != nil {
			logging.Warn(logger, "kyc fixture unreadable, using built-in catalog", "error", err, "path", cfg.KYC.FixturePath)
			return fixture.New()
		}
		return p
	case "http", "kycapi":
		return kycapi.NewClient(kycapi.Config{
			BaseURL: cfg.KYC.BaseURL,
			APIKey:  cfg.KYC.APIKey,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		return fixture.New()
	}
}
