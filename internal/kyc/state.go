package kyc

import (
	"sync"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/kyc"
)

// Status is the load state of a single catalog resource.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Resource tracks one independently loaded slice of the catalog. Data from the last
// successful load is kept across later loads and failures.
type Resource[T any] struct {
	Status Status `json:"status"`
	Data   T      `json:"data"`
	Error  string `json:"error,omitempty"`
}

func (r *Resource[T]) begin() {
	r.Status = StatusLoading
	r.Error = ""
}

func (r *Resource[T]) resolve(data T, err error) {
	if err != nil {
		r.Status = StatusError
		r.Error = err.Error()
		return
	}
	r.Status = StatusSuccess
	r.Data = data
}

// State is the read-only KYC catalog as seen by the document request form.
type State struct {
	BlockingRules Resource[map[string]domain.BlockingRule] `json:"blockingRules"`
	Notification  Resource[domain.Notification]            `json:"notification"`
	Purposes      Resource[[]domain.PurposeState]          `json:"verificationPurposes"`
}

// Ready reports whether every resource has loaded at least once.
func (s State) Ready() bool {
	return s.BlockingRules.Status == StatusSuccess &&
		s.Notification.Status == StatusSuccess &&
		s.Purposes.Status == StatusSuccess
}

// ShapeBlockingRules turns the upstream key map into display state. Rules already on are locked.
func ShapeBlockingRules(raw map[string]bool) map[string]domain.BlockingRule {
	out := make(map[string]domain.BlockingRule, len(raw))
	for key, value := range raw {
		out[key] = domain.BlockingRule{Value: value, IsDisabled: value}
	}
	return out
}

// ShapeNotification locks preselected channels and enables the block when any channel is selected.
func ShapeNotification(channels []domain.Channel) domain.Notification {
	out := domain.Notification{Channels: make([]domain.ChannelState, 0, len(channels))}
	for _, ch := range channels {
		if ch.IsSelected {
			out.Enabled = true
		}
		out.Channels = append(out.Channels, domain.ChannelState{Channel: ch, IsDisabled: ch.IsSelected})
	}
	return out
}

// ShapePurposes locks preselected documents.
func ShapePurposes(purposes []domain.Purpose) []domain.PurposeState {
	out := make([]domain.PurposeState, 0, len(purposes))
	for _, p := range purposes {
		docs := make([]domain.DocumentState, 0, len(p.Documents))
		for _, d := range p.Documents {
			docs = append(docs, domain.DocumentState{Document: d, IsDisabled: d.IsSelected})
		}
		out = append(out, domain.PurposeState{ID: p.ID, Label: p.Label, Documents: docs})
	}
	return out
}

// Store holds the catalog state behind a lock.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore returns a store with every resource idle and empty.
func NewStore() *Store {
	return &Store{state: State{
		BlockingRules: Resource[map[string]domain.BlockingRule]{Status: StatusIdle, Data: map[string]domain.BlockingRule{}},
		Notification:  Resource[domain.Notification]{Status: StatusIdle, Data: domain.Notification{Channels: []domain.ChannelState{}}},
		Purposes:      Resource[[]domain.PurposeState]{Status: StatusIdle, Data: []domain.PurposeState{}},
	}}
}

// State returns a deep copy of the current catalog state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// BeginBlockingRules marks the blocking rules as loading.
func (s *Store) BeginBlockingRules() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.BlockingRules.begin()
}

// ResolveBlockingRules records the outcome of a blocking rules fetch.
func (s *Store) ResolveBlockingRules(raw map[string]bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.BlockingRules.resolve(ShapeBlockingRules(raw), err)
}

// BeginNotification marks the notification channels as loading.
func (s *Store) BeginNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Notification.begin()
}

// ResolveNotification records the outcome of a notification channel fetch.
func (s *Store) ResolveNotification(channels []domain.Channel, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Notification.resolve(ShapeNotification(channels), err)
}

// BeginPurposes marks the verification purposes as loading.
func (s *Store) BeginPurposes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Purposes.begin()
}

// ResolvePurposes records the outcome of a verification purpose fetch.
func (s *Store) ResolvePurposes(purposes []domain.Purpose, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Purposes.resolve(ShapePurposes(purposes), err)
}

func cloneState(in State) State {
	out := in
	out.BlockingRules.Data = cloneRules(in.BlockingRules.Data)
	out.Notification.Data = cloneNotification(in.Notification.Data)
	out.Purposes.Data = clonePurposes(in.Purposes.Data)
	return out
}

func cloneRules(in map[string]domain.BlockingRule) map[string]domain.BlockingRule {
	out := make(map[string]domain.BlockingRule, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneNotification(in domain.Notification) domain.Notification {
	out := domain.Notification{Enabled: in.Enabled, Channels: make([]domain.ChannelState, len(in.Channels))}
	copy(out.Channels, in.Channels)
	return out
}

func clonePurposes(in []domain.PurposeState) []domain.PurposeState {
	out := make([]domain.PurposeState, len(in))
	for i, p := range in {
		docs := make([]domain.DocumentState, len(p.Documents))
		copy(docs, p.Documents)
		out[i] = domain.PurposeState{ID: p.ID, Label: p.Label, Documents: docs}
	}
	return out
}
