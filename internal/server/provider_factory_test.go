package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/preston-bernstein/ops-console-service/internal/config"
	"github.com/preston-bernstein/ops-console-service/internal/providers/fixture"
	"github.com/preston-bernstein/ops-console-service/internal/providers/kycapi"
)

func TestProviderFactoryBuildsWithDefaultInterval(t *testing.T) {
	factory := newProviderFactory(nil, nil)
	prov, closeFn := factory.build(config.Config{Provider: "fixture"})
	if prov == nil || closeFn == nil {
		t.Fatalf("expected provider and close func")
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	channels, err := prov.FetchNotificationChannels(ctx)
	if err != nil || len(channels) == 0 {
		t.Fatalf("expected fixture channels, got %v %v", channels, err)
	}
}

func TestSelectProviderFallsBackToFixture(t *testing.T) {
	provider := selectProvider(config.Config{Provider: "unknown"}, nil)
	if _, ok := provider.(*fixture.Provider); !ok {
		t.Fatalf("expected fixture fallback, got %T", provider)
	}
}

func TestSelectProviderChoosesHTTP(t *testing.T) {
	provider := selectProvider(config.Config{
		Provider: "http",
		KYC:      config.KYCConfig{BaseURL: "http://example.com", APIKey: "key"},
	}, nil)
	if _, ok := provider.(*kycapi.Client); !ok {
		t.Fatalf("expected kycapi provider, got %T", provider)
	}
}

func TestSelectProviderLoadsFixtureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kyc.yaml")
	body := "notification:\n  - id: 9\n    label: Pager\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	provider := selectProvider(config.Config{KYC: config.KYCConfig{FixturePath: path}}, nil)
	channels, err := provider.FetchNotificationChannels(context.Background())
	if err != nil || len(channels) != 1 || channels[0].Label != "Pager" {
		t.Fatalf("expected fixture file channels, got %+v %v", channels, err)
	}

	missing := selectProvider(config.Config{KYC: config.KYCConfig{FixturePath: filepath.Join(t.TempDir(), "nope.yaml")}}, nil)
	channels, _ = missing.FetchNotificationChannels(context.Background())
	if len(channels) != 3 {
		t.Fatalf("expected built-in catalog when fixture is missing, got %+v", channels)
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName("HTTP", nil); got != "http" {
		t.Fatalf("expected lower-cased name, got %s", got)
	}
	if got := normalizeProviderName("", fixture.New()); got != "*fixture.provider" {
		t.Fatalf("expected type-derived name, got %s", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected fallback name, got %s", got)
	}
}
