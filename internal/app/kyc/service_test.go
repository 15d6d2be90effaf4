package kyc

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/kyc"
	"github.com/preston-bernstein/ops-console-service/internal/kyc"
)

type stubRefresher struct {
	calls int
	err   error
}

func (s *stubRefresher) Refresh(ctx context.Context) error {
	s.calls++
	return s.err
}

func loadedStore() *kyc.Store {
	s := kyc.NewStore()
	s.ResolveBlockingRules(map[string]bool{"blockCasino": true, "blockWithdrawals": false}, nil)
	s.ResolveNotification([]domain.Channel{
		{ID: "1", Label: "Email", IsSelected: true},
		{ID: "2", Label: "SMS"},
	}, nil)
	s.ResolvePurposes([]domain.Purpose{
		{ID: "1", Label: "Identity", Documents: []domain.Document{
			{ID: "11", Label: "Passport", IsSelected: true},
			{ID: "12", Label: "National ID"},
		}},
		{ID: "2", Label: "Address", Documents: []domain.Document{
			{ID: "21", Label: "Utility Bill"},
		}},
		{ID: "3", Label: "Selfie", Documents: []domain.Document{}},
	}, nil)
	return s
}

func TestBuildRequestReplaysActions(t *testing.T) {
	svc := NewService(loadedStore(), nil, nil)

	sub, err := svc.BuildRequest(context.Background(), []Action{
		{Op: ActionSetSectionChecked, SectionID: "2", Value: true},
		{Op: ActionSetSectionChecked, SectionID: "3", Value: true},
		{Op: ActionToggleChannel, ChannelID: "2"},
		{Op: ActionToggleBlockingRule, Rule: "blockWithdrawals"},
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := domain.Request{
		Verifies: map[string][]domain.ID{
			"1": {"11"},
			"2": {"21"},
			"3": {"0"},
		},
		Notification:  []domain.ID{"1", "2"},
		BlockingRules: map[string]bool{"blockCasino": true, "blockWithdrawals": true},
	}
	if diff := cmp.Diff(want, sub.Request); diff != "" {
		t.Fatalf("unexpected request (-want +got):\n%s", diff)
	}
	if len(sub.Ignored) != 0 {
		t.Fatalf("expected every action applied, got ignored %v", sub.Ignored)
	}
}

func TestBuildRequestIgnoresLockedItems(t *testing.T) {
	svc := NewService(loadedStore(), nil, nil)

	sub, err := svc.BuildRequest(context.Background(), []Action{
		{Op: ActionToggleDocument, SectionID: "1", DocumentID: "11"},
		{Op: ActionToggleBlockingRule, Rule: "blockCasino"},
		{Op: ActionToggleChannel, ChannelID: "1"},
		{Op: ActionToggleDocument, SectionID: "9", DocumentID: "1"},
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3}, sub.Ignored); diff != "" {
		t.Fatalf("unexpected ignored (-want +got):\n%s", diff)
	}
	if !sub.Request.BlockingRules["blockCasino"] || len(sub.Request.Notification) != 1 {
		t.Fatalf("locked items changed: %+v", sub.Request)
	}
}

func TestBuildRequestDisabledNotification(t *testing.T) {
	svc := NewService(loadedStore(), nil, nil)
	sub, err := svc.BuildRequest(context.Background(), []Action{
		{Op: ActionSetNotificationEnabled, Value: false},
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if sub.Request.Notification != nil {
		t.Fatalf("expected no channels while disabled, got %v", sub.Request.Notification)
	}
}

func TestBuildRequestRejectsUnknownAction(t *testing.T) {
	svc := NewService(loadedStore(), nil, nil)
	if _, err := svc.BuildRequest(context.Background(), []Action{{Op: "explode"}}); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected invalid action, got %v", err)
	}
}

func TestBuildRequestRequiresLoadedCatalog(t *testing.T) {
	svc := NewService(kyc.NewStore(), nil, nil)
	if _, err := svc.BuildRequest(context.Background(), nil); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected not ready, got %v", err)
	}
}

func TestRefresh(t *testing.T) {
	ref := &stubRefresher{err: errors.New("down")}
	svc := NewService(loadedStore(), ref, nil)
	state, err := svc.Refresh(context.Background())
	if !errors.Is(err, ref.err) || ref.calls != 1 {
		t.Fatalf("expected refresher error, got %v (calls %d)", err, ref.calls)
	}
	if !state.Ready() {
		t.Fatalf("expected current state returned alongside the error")
	}

	if _, err := NewService(loadedStore(), nil, nil).Refresh(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected not ready without refresher, got %v", err)
	}
}

func TestDraftSeedsFromState(t *testing.T) {
	d := NewService(loadedStore(), nil, nil).Draft()
	if !d.OpenSections["1"] || d.OpenSections["2"] || d.OpenSections["3"] {
		t.Fatalf("unexpected open sections %+v", d.OpenSections)
	}
}
