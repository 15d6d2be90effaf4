package carousel

import (
	"sort"

	"github.com/google/uuid"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/carousel"
)

// Session holds one editor's working list, the last saved snapshot, and the dirty flag.
// It is not safe for concurrent use; callers serialise access.
type Session struct {
	entries []domain.Entry
	saved   []domain.Entry
	dirty   bool
	newID   func() string
}

// Option customises a Session.
type Option func(*Session)

// WithIDFunc overrides how ids for new entries are generated.
func WithIDFunc(fn func() string) Option {
	return func(s *Session) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// ReorderResult describes what a reorder did.
type ReorderResult struct {
	Moved    bool
	Promoted *domain.Entry
}

// NewSession builds a session from initial entries. Entries are ordered by position and
// renumbered so positions are dense; the result is also the initial saved snapshot.
func NewSession(initial []domain.Entry, opts ...Option) *Session {
	entries := cloneEntries(initial)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Position < entries[j].Position
	})
	renumber(entries)

	s := &Session{
		entries: entries,
		saved:   cloneEntries(entries),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Entries returns a copy of the working list in position order.
func (s *Session) Entries() []domain.Entry {
	return cloneEntries(s.entries)
}

// Saved returns a copy of the last saved snapshot.
func (s *Session) Saved() []domain.Entry {
	return cloneEntries(s.saved)
}

// Dirty reports whether there are unsaved changes.
func (s *Session) Dirty() bool {
	return s.dirty
}

// LiveEntries returns the entries at positions 1..LiveCount.
func (s *Session) LiveEntries() []domain.Entry {
	if len(s.entries) <= domain.LiveCount {
		return cloneEntries(s.entries)
	}
	return cloneEntries(s.entries[:domain.LiveCount])
}

// BackupEntries returns the entries past the live section.
func (s *Session) BackupEntries() []domain.Entry {
	if len(s.entries) <= domain.LiveCount {
		return []domain.Entry{}
	}
	return cloneEntries(s.entries[domain.LiveCount:])
}

// AddEntry appends a default entry at the end of the list.
func (s *Session) AddEntry() (domain.Entry, error) {
	if len(s.entries) >= domain.MaxPositions {
		return domain.Entry{}, ErrCapacityExceeded
	}
	entry := domain.NewDefaultEntry(s.newID(), len(s.entries)+1)
	s.entries = append(s.entries, entry)
	s.dirty = true
	return entry, nil
}

// RemoveEntry deletes the entry with the given id and closes the gap it leaves.
// It reports false, without touching state, when the id is unknown.
func (s *Session) RemoveEntry(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	renumber(s.entries)
	s.dirty = true
	return true
}

// ToggleVisible flips the visibility of the entry with the given id. A live entry that
// becomes hidden stays where it is.
func (s *Session) ToggleVisible(id string) (domain.Entry, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Entry{}, false
	}
	s.entries[idx].Visible = !s.entries[idx].Visible
	s.dirty = true
	return s.entries[idx], true
}

// Reorder moves draggedID onto targetID's rank. targetID may be BackupSectionID to drop
// at the end of the backup section. Moving a live entry into the backup section promotes
// the first visible backup entry into the last live slot.
func (s *Session) Reorder(draggedID, targetID string) (ReorderResult, error) {
	if draggedID == targetID {
		if s.indexOf(draggedID) < 0 {
			return ReorderResult{}, ErrUnresolvableReference
		}
		return ReorderResult{}, nil
	}
	oldIndex := s.indexOf(draggedID)
	newIndex := len(s.entries) - 1
	if targetID != domain.BackupSectionID {
		newIndex = s.indexOf(targetID)
	}
	if oldIndex < 0 || newIndex < 0 {
		return ReorderResult{}, ErrUnresolvableReference
	}
	if oldIndex == newIndex {
		return ReorderResult{}, nil
	}

	dragged := s.entries[oldIndex]
	targetPosition := newIndex + 1
	if targetPosition <= domain.LiveCount && !dragged.Visible {
		return ReorderResult{}, ErrIllegalPromotion
	}
	liveToBackup := dragged.Position <= domain.LiveCount && targetPosition > domain.LiveCount

	move(s.entries, oldIndex, newIndex)
	renumber(s.entries)
	s.dirty = true

	result := ReorderResult{Moved: true}
	if !liveToBackup {
		return result, nil
	}

	candidate := -1
	for i := domain.LiveCount; i < len(s.entries); i++ {
		if s.entries[i].Visible {
			candidate = i
			break
		}
	}
	if candidate < 0 {
		return result, nil
	}
	if candidate != domain.LiveCount-1 {
		move(s.entries, candidate, domain.LiveCount-1)
		renumber(s.entries)
	}
	promoted := s.entries[domain.LiveCount-1]
	result.Promoted = &promoted
	return result, nil
}

// Save makes the working list the new saved snapshot.
func (s *Session) Save() {
	s.saved = cloneEntries(s.entries)
	s.dirty = false
}

// Cancel discards unsaved changes.
func (s *Session) Cancel() {
	s.entries = cloneEntries(s.saved)
	s.dirty = false
}

func (s *Session) indexOf(id string) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// move relocates the element at from to index to, shifting everything in between by one.
func move(entries []domain.Entry, from, to int) {
	moved := entries[from]
	if from < to {
		copy(entries[from:to], entries[from+1:to+1])
	} else {
		copy(entries[to+1:from+1], entries[to:from])
	}
	entries[to] = moved
}

func renumber(entries []domain.Entry) {
	for i := range entries {
		entries[i].Position = i + 1
	}
}

func cloneEntries(entries []domain.Entry) []domain.Entry {
	out := make([]domain.Entry, len(entries))
	copy(out, entries)
	return out
}
