package config

import "time"

const (
	envPort            = "PORT"
	envProvider        = "PROVIDER"
	envRefreshInterval = "KYC_REFRESH_INTERVAL"
	envKYCBaseURL      = "KYC_BASE_URL"
	envKYCAPIKey       = "KYC_API_KEY"
	envKYCRuleID       = "KYC_BLOCKING_RULE_ID"
	envKYCMinInterval  = "KYC_MIN_INTERVAL"
	envKYCFixturePath  = "KYC_FIXTURE_PATH"
	envKYCMaxAttempts  = "KYC_MAX_ATTEMPTS"
	envSeedPath        = "CAROUSEL_SEED_PATH"
	envSeedWatch       = "CAROUSEL_SEED_WATCH"
	envAdminToken      = "ADMIN_TOKEN"
	envAdminBrands     = "ADMIN_BRANDS"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"

	defaultPort     = "4000"
	defaultProvider = "fixture"
	// The catalog changes rarely; refreshing every few minutes keeps upstream load negligible.
	defaultRefreshInterval = 5 * Duration(time.Minute)
	defaultKYCBaseURL      = "http://localhost:3000"
	defaultKYCRuleID       = "1"
	// Spacing between upstream calls; each refresh makes three.
	defaultKYCMinInterval = 200 * Duration(time.Millisecond)
	defaultKYCMaxAttempts = 3
	defaultAdminBrand     = "Pinacle888"
	defaultMetricsPort    = "9090"
	defaultServiceName    = "ops-console-service"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
)
