package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/ops-console-service/internal/carousel"
	domain "github.com/preston-bernstein/ops-console-service/internal/domain/carousel"
)

// ErrSessionNotFound is returned for unknown or closed session ids.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionDirty is returned when closing a session that has unsaved changes.
var ErrSessionDirty = errors.New("session has unsaved changes")

type sessionSlot struct {
	mu      sync.Mutex
	session *carousel.Session
	created time.Time
	closed  bool
}

// SessionStore keeps carousel editing sessions in memory. Operations on one session are
// serialised; different sessions never block each other beyond the map lookup.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionSlot
	newID    func() string
	now      func() time.Time
	opts     []carousel.Option
}

// Info summarises an open session.
type Info struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
}

// NewSessionStore constructs an empty store. opts are applied to every new session.
func NewSessionStore(opts ...carousel.Option) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionSlot),
		newID:    uuid.NewString,
		now:      time.Now,
		opts:     opts,
	}
}

// Create opens a session seeded with entries and returns its id.
func (s *SessionStore) Create(entries []domain.Entry) string {
	slot := &sessionSlot{
		session: carousel.NewSession(entries, s.opts...),
		created: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	for s.sessions[id] != nil {
		id = s.newID()
	}
	s.sessions[id] = slot
	return id
}

// WithSession runs fn while holding the session's lock.
func (s *SessionStore) WithSession(id string, fn func(*carousel.Session) error) error {
	slot, ok := s.slot(id)
	if !ok {
		return ErrSessionNotFound
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.closed {
		return ErrSessionNotFound
	}
	return fn(slot.session)
}

// Delete closes a session. A dirty session is only closed when force is set.
func (s *SessionStore) Delete(id string, force bool) error {
	slot, ok := s.slot(id)
	if !ok {
		return ErrSessionNotFound
	}

	// slot.mu stays held until the slot is gone so no edit lands between the
	// dirty check and the delete. WithSession never takes s.mu under slot.mu.
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.closed {
		return ErrSessionNotFound
	}
	if slot.session.Dirty() && !force {
		return ErrSessionDirty
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[id] != slot {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	slot.closed = true
	return nil
}

// List returns the open sessions, oldest first.
func (s *SessionStore) List() []Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Info, 0, len(s.sessions))
	for id, slot := range s.sessions {
		result = append(result, Info{ID: id, Created: slot.created})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Created.Equal(result[j].Created) {
			return result[i].ID < result[j].ID
		}
		return result[i].Created.Before(result[j].Created)
	})
	return result
}

// Len reports how many sessions are open.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) slot(id string) (*sessionSlot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, ok := s.sessions[id]
	return slot, ok
}
