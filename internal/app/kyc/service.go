package kyc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/kyc"
	"github.com/preston-bernstein/ops-console-service/internal/kyc"
	"github.com/preston-bernstein/ops-console-service/internal/logging"
)

var (
	// ErrNotReady is returned when a request is shaped before the catalog has loaded.
	ErrNotReady = errors.New("kyc catalog not loaded")
	// ErrInvalidAction is returned for an unknown draft action.
	ErrInvalidAction = errors.New("invalid draft action")
)

// Draft action names.
const (
	ActionToggleSectionOpen      = "toggleSectionOpen"
	ActionSetSectionChecked      = "setSectionChecked"
	ActionToggleDocument         = "toggleDocument"
	ActionSetNotificationEnabled = "setNotificationEnabled"
	ActionToggleChannel          = "toggleChannel"
	ActionToggleBlockingRule     = "toggleBlockingRule"
)

// StateSource exposes the loaded catalog.
type StateSource interface {
	State() kyc.State
}

// Refresher reloads the catalog on demand.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Action is one edit applied to a fresh draft, in the order the form user made it.
type Action struct {
	Op         string    `json:"op"`
	SectionID  domain.ID `json:"sectionId,omitempty"`
	DocumentID domain.ID `json:"documentId,omitempty"`
	ChannelID  domain.ID `json:"channelId,omitempty"`
	Rule       string    `json:"rule,omitempty"`
	Value      bool      `json:"value,omitempty"`
}

// Submission is the shaped request together with the draft it came from. Ignored lists the
// indexes of actions that targeted locked or unknown items.
type Submission struct {
	Request domain.Request `json:"request"`
	Draft   kyc.Draft      `json:"draft"`
	Ignored []int          `json:"ignored,omitempty"`
}

// Service exposes the KYC catalog and shapes document requests.
type Service struct {
	state     StateSource
	refresher Refresher
	logger    *slog.Logger
}

// NewService constructs a Service. refresher may be nil, in which case Refresh reports the
// catalog as unavailable.
func NewService(state StateSource, refresher Refresher, logger *slog.Logger) *Service {
	return &Service{state: state, refresher: refresher, logger: logger}
}

// State returns the tri-state catalog.
func (s *Service) State() kyc.State {
	return s.state.State()
}

// Refresh reloads the catalog now.
func (s *Service) Refresh(ctx context.Context) (kyc.State, error) {
	if s.refresher == nil {
		return s.State(), ErrNotReady
	}
	err := s.refresher.Refresh(ctx)
	return s.State(), err
}

// Draft returns a fresh draft seeded from the current catalog.
func (s *Service) Draft() kyc.Draft {
	return kyc.NewDraft(s.State())
}

// BuildRequest replays actions onto a fresh draft and shapes the submission payload.
func (s *Service) BuildRequest(ctx context.Context, actions []Action) (Submission, error) {
	state := s.State()
	if !state.Ready() {
		return Submission{}, ErrNotReady
	}

	draft := kyc.NewDraft(state)
	var ignored []int
	for i, action := range actions {
		applied, err := apply(&draft, action)
		if err != nil {
			return Submission{}, fmt.Errorf("action %d: %w", i, err)
		}
		if !applied {
			ignored = append(ignored, i)
		}
	}

	sub := Submission{Request: draft.Request(), Draft: draft, Ignored: ignored}
	logging.Info(logging.FromContext(ctx, s.logger), "kyc request shaped",
		"sections", draft.SelectedSections(),
		"channels", len(sub.Request.Notification),
		"ignored", len(ignored),
	)
	return sub, nil
}

func apply(d *kyc.Draft, a Action) (bool, error) {
	switch a.Op {
	case ActionToggleSectionOpen:
		return d.ToggleSectionOpen(a.SectionID), nil
	case ActionSetSectionChecked:
		return d.SetSectionChecked(a.SectionID, a.Value), nil
	case ActionToggleDocument:
		return d.ToggleDocument(a.SectionID, a.DocumentID), nil
	case ActionSetNotificationEnabled:
		d.SetNotificationEnabled(a.Value)
		return true, nil
	case ActionToggleChannel:
		return d.ToggleChannel(a.ChannelID), nil
	case ActionToggleBlockingRule:
		return d.ToggleBlockingRule(a.Rule), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidAction, a.Op)
	}
}
