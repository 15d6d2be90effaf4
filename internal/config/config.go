package config

// Config holds runtime configuration for the server.
type Config struct {
	Port     string
	Provider string
	KYC      KYCConfig
	Carousel CarouselConfig
	Admin    AdminConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

// LogConfig selects the root logger's level and handler.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:     envOrDefault(envPort, defaultPort),
		Provider: envOrDefault(envProvider, defaultProvider),
		KYC:      loadKYC(),
		Carousel: loadCarousel(),
		Admin:    loadAdmin(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Metrics: loadMetrics(),
	}
}
