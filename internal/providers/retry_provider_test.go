package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/kyc"
	"github.com/preston-bernstein/ops-console-service/internal/metrics"
)

type flakeyProvider struct {
	failures int
	err      error
	calls    int
}

func (f *flakeyProvider) fail() error {
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return f.err
		}
		return errors.New("boom")
	}
	return nil
}

func (f *flakeyProvider) FetchBlockingRules(ctx context.Context, ruleID string) (map[string]bool, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return map[string]bool{"rule-" + ruleID: true}, nil
}

func (f *flakeyProvider) FetchNotificationChannels(ctx context.Context) ([]domain.Channel, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return []domain.Channel{{ID: "1", Label: "Email"}}, nil
}

func (f *flakeyProvider) FetchVerificationPurposes(ctx context.Context) ([]domain.Purpose, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return []domain.Purpose{{ID: "1", Label: "Proof of identity"}}, nil
}

func fastRetry(p KYCProvider) *retryingProvider {
	rp := p.(*retryingProvider)
	rp.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return rp
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rp := fastRetry(NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Millisecond))

	rules, err := rp.FetchBlockingRules(context.Background(), "1")
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if !rules["rule-1"] {
		t.Fatalf("unexpected rules %+v", rules)
	}
	if fp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rec := metrics.NewRecorder()
	rp := fastRetry(NewRetryingProvider(fp, nil, rec, "flakey", 2, time.Millisecond))

	if _, err := rp.FetchNotificationChannels(context.Background()); err == nil {
		t.Fatal("expected error after retries")
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
	if got := rec.ProviderErrors("flakey"); got != 2 {
		t.Fatalf("expected 2 recorded errors, got %d", got)
	}
}

func TestRetryingProviderDoesNotRetryClientErrors(t *testing.T) {
	fp := &flakeyProvider{failures: 5, err: &StatusError{Provider: "kycapi", Resource: "verificationPurposes", StatusCode: 404}}
	rp := fastRetry(NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Millisecond))

	_, err := rp.FetchVerificationPurposes(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != 404 {
		t.Fatalf("expected status error, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fp.calls)
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.FetchNotificationChannels(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestRetryingProviderRecordsRateLimitMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{Provider: "test", StatusCode: 429, RetryAfter: time.Millisecond}}
	rp := fastRetry(NewRetryingProvider(fp, nil, rec, "rl", 2, time.Millisecond))

	channels, err := rp.FetchNotificationChannels(context.Background())
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if len(channels) != 1 {
		t.Fatalf("unexpected channels %+v", channels)
	}
	if got := rec.RateLimitHits("rl"); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.LastRetryAfter("rl"); got != time.Millisecond {
		t.Fatalf("expected retry-after recorded, got %s", got)
	}
	if got := rec.ProviderCalls("rl"); got != 2 {
		t.Fatalf("expected 2 provider calls, got %d", got)
	}
}

func TestRetryAfterBackOffOverridesOnce(t *testing.T) {
	b := &retryAfterBackOff{BackOff: backoff.NewConstantBackOff(50 * time.Millisecond)}

	b.override(2 * time.Second)
	if got := b.NextBackOff(); got != 2*time.Second {
		t.Fatalf("expected retry-after delay, got %s", got)
	}
	if got := b.NextBackOff(); got != 50*time.Millisecond {
		t.Fatalf("expected base delay after override consumed, got %s", got)
	}

	b.override(time.Hour)
	if got := b.NextBackOff(); got != maxRetryAfter {
		t.Fatalf("expected capped delay, got %s", got)
	}
}

func TestRetryAfterBackOffRespectsStop(t *testing.T) {
	b := &retryAfterBackOff{BackOff: &backoff.StopBackOff{}}
	b.override(time.Second)
	if got := b.NextBackOff(); got != backoff.Stop {
		t.Fatalf("expected stop, got %s", got)
	}
}

func TestNewRetryingProviderDefaults(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, metrics.NewRecorder(), "", 0, 0).(*retryingProvider)
	if rp.providerName != "provider" {
		t.Fatalf("expected fallback provider name, got %s", rp.providerName)
	}
	if rp.maxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts, got %d", rp.maxAttempts)
	}
	exp, ok := rp.newBackOff().(*backoff.ExponentialBackOff)
	if !ok || exp.InitialInterval != defaultBackoff {
		t.Fatalf("expected default exponential backoff, got %+v", rp.newBackOff())
	}
	if _, err := rp.FetchBlockingRules(context.Background(), "1"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
