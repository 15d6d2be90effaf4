package testutil

import (
	"context"

	kycdomain "github.com/preston-bernstein/ops-console-service/internal/domain/kyc"
	"github.com/preston-bernstein/ops-console-service/internal/providers"
)

// GoodProvider returns the configured catalog with no error.
type GoodProvider struct {
	Rules    map[string]bool
	Channels []kycdomain.Channel
	Purposes []kycdomain.Purpose
}

func (p GoodProvider) FetchBlockingRules(ctx context.Context, ruleID string) (map[string]bool, error) {
	_ = ctx
	_ = ruleID
	return p.Rules, nil
}

func (p GoodProvider) FetchNotificationChannels(ctx context.Context) ([]kycdomain.Channel, error) {
	_ = ctx
	return p.Channels, nil
}

func (p GoodProvider) FetchVerificationPurposes(ctx context.Context) ([]kycdomain.Purpose, error) {
	_ = ctx
	return p.Purposes, nil
}

// ErrProvider fails every fetch with Err.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchBlockingRules(ctx context.Context, ruleID string) (map[string]bool, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchNotificationChannels(ctx context.Context) ([]kycdomain.Channel, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchVerificationPurposes(ctx context.Context) ([]kycdomain.Purpose, error) {
	return nil, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
func UnavailableProvider() ErrProvider {
	return ErrProvider{Err: providers.ErrProviderUnavailable}
}

// NotifyingProvider serves the sample catalog and closes Notify on the first purposes fetch.
type NotifyingProvider struct {
	Notify chan struct{}
}

func (p *NotifyingProvider) FetchBlockingRules(ctx context.Context, ruleID string) (map[string]bool, error) {
	_ = ctx
	_ = ruleID
	return map[string]bool{"blockWithdrawals": true}, nil
}

func (p *NotifyingProvider) FetchNotificationChannels(ctx context.Context) ([]kycdomain.Channel, error) {
	_ = ctx
	return SampleChannels(), nil
}

func (p *NotifyingProvider) FetchVerificationPurposes(ctx context.Context) ([]kycdomain.Purpose, error) {
	_ = ctx
	if p.Notify != nil {
		select {
		case <-p.Notify:
		default:
			close(p.Notify)
		}
	}
	return SamplePurposes(), nil
}
