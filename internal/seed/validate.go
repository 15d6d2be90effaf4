package seed

import (
	"fmt"
	"sort"
	"time"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/carousel"
	"github.com/preston-bernstein/ops-console-service/internal/timeutil"
)

// Issue is one validation finding, optionally tied to an entry.
type Issue struct {
	EntryID string `json:"entryId,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.EntryID == "" {
		return i.Message
	}
	return fmt.Sprintf("entry %s: %s", i.EntryID, i.Message)
}

// Report collects blocking errors and advisory warnings for a seed.
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// OK reports whether the seed can be loaded.
func (r Report) OK() bool {
	return len(r.Errors) == 0
}

// Err summarises the blocking errors, or nil.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	if len(r.Errors) == 1 {
		return fmt.Errorf("invalid seed: %s", r.Errors[0])
	}
	return fmt.Errorf("invalid seed: %s (and %d more)", r.Errors[0], len(r.Errors)-1)
}

// Validate checks a seed before it is handed to a session. Capacity and id problems are
// errors; position gaps are warnings because sessions renumber on load.
func Validate(entries []domain.Entry, now time.Time, loc *time.Location) Report {
	var r Report

	if len(entries) > domain.MaxPositions {
		r.Errors = append(r.Errors, Issue{Message: fmt.Sprintf("%d entries exceed the maximum of %d", len(entries), domain.MaxPositions)})
	}

	seenIDs := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			r.Errors = append(r.Errors, Issue{Message: fmt.Sprintf("entry at position %d has no id", e.Position)})
			continue
		}
		if e.ID == domain.BackupSectionID {
			r.Errors = append(r.Errors, Issue{EntryID: e.ID, Message: "id is reserved for the backup section drop target"})
		}
		if seenIDs[e.ID] {
			r.Errors = append(r.Errors, Issue{EntryID: e.ID, Message: "duplicate id"})
		}
		seenIDs[e.ID] = true
	}

	positions := make([]int, 0, len(entries))
	for _, e := range entries {
		positions = append(positions, e.Position)
	}
	sort.Ints(positions)
	for i, p := range positions {
		if p != i+1 {
			r.Warnings = append(r.Warnings, Issue{Message: "positions are not a dense 1..N sequence; they will be renumbered"})
			break
		}
	}

	ordered := append([]domain.Entry(nil), entries...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	for rank, e := range ordered {
		if rank < domain.LiveCount && !e.Visible {
			r.Warnings = append(r.Warnings, Issue{EntryID: e.ID, Message: "hidden entry in the live section"})
		}
		if e.ExpiryDateTime == "" {
			continue
		}
		expiry, err := timeutil.ParseExpiry(e.ExpiryDateTime, loc)
		if err != nil {
			r.Warnings = append(r.Warnings, Issue{EntryID: e.ID, Message: err.Error()})
			continue
		}
		if !now.IsZero() && expiry.Before(now) {
			r.Warnings = append(r.Warnings, Issue{EntryID: e.ID, Message: "expired at " + timeutil.FormatExpiry(expiry)})
		}
	}
	return r
}
