package config

import "github.com/preston-bernstein/ops-console-service/internal/metrics"

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

// Telemetry converts the env settings into the exporter configuration.
func (m MetricsConfig) Telemetry() metrics.TelemetryConfig {
	return metrics.TelemetryConfig{
		Enabled:      m.Enabled,
		Port:         m.Port,
		ServiceName:  m.ServiceName,
		OtlpEndpoint: m.OtlpEndpoint,
		OtlpInsecure: m.OtlpInsecure,
	}
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
}
