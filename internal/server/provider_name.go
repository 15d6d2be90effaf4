package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/ops-console-service/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving it from the instance
// when not configured. Metrics and logs use the same name.
func normalizeProviderName(raw string, provider providers.KYCProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
