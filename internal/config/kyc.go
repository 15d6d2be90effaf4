package config

import "time"

// KYCConfig controls how the KYC catalog is fetched and refreshed.
type KYCConfig struct {
	BaseURL         string
	APIKey          string
	BlockingRuleID  string
	RefreshInterval time.Duration
	MinInterval     time.Duration // spacing between upstream calls
	MaxAttempts     int
	FixturePath     string // optional YAML catalog for the fixture provider
}

func loadKYC() KYCConfig {
	return KYCConfig{
		BaseURL:         envOrDefault(envKYCBaseURL, defaultKYCBaseURL),
		APIKey:          envOrDefault(envKYCAPIKey, ""),
		BlockingRuleID:  envOrDefault(envKYCRuleID, defaultKYCRuleID),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		MinInterval:     durationEnvOrDefault(envKYCMinInterval, defaultKYCMinInterval),
		MaxAttempts:     intEnvOrDefault(envKYCMaxAttempts, defaultKYCMaxAttempts),
		FixturePath:     envOrDefault(envKYCFixturePath, ""),
	}
}
