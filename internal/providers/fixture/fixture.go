package fixture

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/kyc"
)

// Catalog is the full set of KYC data served by the fixture provider.
type Catalog struct {
	BlockingRules map[string]bool  `yaml:"blockingRules"`
	Notification  []domain.Channel `yaml:"notification"`
	Purposes      []domain.Purpose `yaml:"verificationPurposes"`
}

// Provider returns a static catalog useful for local testing and bootstrapping.
type Provider struct {
	catalog Catalog
}

// New creates a fixture provider backed by the built-in catalog.
func New() *Provider {
	return &Provider{catalog: DefaultCatalog()}
}

// Load creates a fixture provider from a YAML catalog file.
func Load(path string) (*Provider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read kyc fixture: %w", err)
	}
	var catalog Catalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("parse kyc fixture %s: %w", path, err)
	}
	return &Provider{catalog: catalog}, nil
}

// FetchBlockingRules returns the fixture rules; every rule id maps to the same set.
func (p *Provider) FetchBlockingRules(ctx context.Context, ruleID string) (map[string]bool, error) {
	_ = ctx
	_ = ruleID
	out := make(map[string]bool, len(p.catalog.BlockingRules))
	for k, v := range p.catalog.BlockingRules {
		out[k] = v
	}
	return out, nil
}

// FetchNotificationChannels returns the fixture channels.
func (p *Provider) FetchNotificationChannels(ctx context.Context) ([]domain.Channel, error) {
	_ = ctx
	return append([]domain.Channel(nil), p.catalog.Notification...), nil
}

// FetchVerificationPurposes returns the fixture purposes.
func (p *Provider) FetchVerificationPurposes(ctx context.Context) ([]domain.Purpose, error) {
	_ = ctx
	out := make([]domain.Purpose, len(p.catalog.Purposes))
	for i, purpose := range p.catalog.Purposes {
		purpose.Documents = append([]domain.Document(nil), purpose.Documents...)
		out[i] = purpose
	}
	return out, nil
}

// DefaultCatalog is the built-in catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		BlockingRules: map[string]bool{
			"casinoBonusIneligible":     true,
			"sbBonusIneligible":         false,
			"blockCasino":               false,
			"blockSBWagering":           false,
			"blockWithdrawals":          true,
			"betBuilderBonusIneligible": false,
			"blockBetBuilder":           false,
		},
		Notification: []domain.Channel{
			{ID: "1", Label: "Email", IsSelected: true},
			{ID: "2", Label: "SMS"},
			{ID: "3", Label: "In-App Message"},
		},
		Purposes: []domain.Purpose{
			{
				ID:    "1",
				Label: "Proof of Identity",
				Documents: []domain.Document{
					{ID: "11", Label: "Passport", IsSelected: true},
					{ID: "12", Label: "National ID Card"},
					{ID: "13", Label: "Driving License"},
				},
			},
			{
				ID:    "2",
				Label: "Proof of Address",
				Documents: []domain.Document{
					{ID: "21", Label: "Utility Bill"},
					{ID: "22", Label: "Bank Statement"},
				},
			},
			{ID: "3", Label: "Selfie", Documents: []domain.Document{}},
		},
	}
}
