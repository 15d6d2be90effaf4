package kycapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/kyc"
	"github.com/preston-bernstein/ops-console-service/internal/providers"
)

// Config controls how the client reaches the upstream KYC API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client fetches the KYC catalog from the upstream REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// FetchBlockingRules retrieves the blocking rule flags for ruleID.
func (c *Client) FetchBlockingRules(ctx context.Context, ruleID string) (map[string]bool, error) {
	raw, err := c.get(ctx, resourceBlockingRules, "/blockingRules/"+url.PathEscape(ruleID))
	if err != nil {
		return nil, err
	}
	return decodeRules(raw)
}

// FetchNotificationChannels retrieves the notification channel list.
func (c *Client) FetchNotificationChannels(ctx context.Context) ([]domain.Channel, error) {
	raw, err := c.get(ctx, resourceNotification, "/notification")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Channel](raw, resourceNotification)
}

// FetchVerificationPurposes retrieves the verification purpose sections.
func (c *Client) FetchVerificationPurposes(ctx context.Context) ([]domain.Purpose, error) {
	raw, err := c.get(ctx, resourcePurposes, "/verificationPurposes")
	if err != nil {
		return nil, err
	}
	purposes, err := decodeList[domain.Purpose](raw, resourcePurposes)
	if err != nil {
		return nil, err
	}
	for i := range purposes {
		if purposes[i].Documents == nil {
			purposes[i].Documents = []domain.Document{}
		}
	}
	return purposes, nil
}

func (c *Client) get(ctx context.Context, resource, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", providerName, resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    fmt.Sprintf("%s: %s rate limited", providerName, resource),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &providers.StatusError{
			Provider:   providerName,
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: read body: %w", providerName, resource, err)
	}
	return raw, nil
}
