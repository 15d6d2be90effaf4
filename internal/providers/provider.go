package providers

import (
	"context"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/kyc"
)

// KYCProvider fetches the read-only catalog behind the document request form.
// Each call is independent; callers may run them concurrently.
type KYCProvider interface {
	FetchBlockingRules(ctx context.Context, ruleID string) (map[string]bool, error)
	FetchNotificationChannels(ctx context.Context) ([]domain.Channel, error)
	FetchVerificationPurposes(ctx context.Context) ([]domain.Purpose, error)
}
