package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// lookup returns the trimmed value of key and whether it is set to something non-blank.
func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// parsedOrDefault parses key with parse, falling back to def when unset or rejected.
func parsedOrDefault[T any](key string, def T, parse func(string) (T, bool)) T {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	if v, ok := parse(raw); ok {
		return v
	}
	return def
}

func envOrDefault(key, defaultValue string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return defaultValue
}

// durationEnvOrDefault accepts Go durations ("90s") or bare seconds ("90").
func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	return parsedOrDefault(key, defaultValue, func(raw string) (time.Duration, bool) {
		if secs, err := strconv.Atoi(raw); err == nil {
			return time.Duration(secs) * time.Second, secs > 0
		}
		d, err := time.ParseDuration(raw)
		return d, err == nil && d > 0
	})
}

func intEnvOrDefault(key string, defaultValue int) int {
	return parsedOrDefault(key, defaultValue, func(raw string) (int, bool) {
		n, err := strconv.Atoi(raw)
		return n, err == nil && n > 0
	})
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	return parsedOrDefault(key, defaultValue, func(raw string) (bool, bool) {
		switch strings.ToLower(raw) {
		case "1", "true", "yes", "on":
			return true, true
		case "0", "false", "no", "off":
			return false, true
		}
		return false, false
	})
}

// listEnvOrDefault splits a comma-separated value, dropping blanks.
func listEnvOrDefault(key string, defaultValue []string) []string {
	return parsedOrDefault(key, defaultValue, func(raw string) ([]string, bool) {
		var out []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, len(out) > 0
	})
}
