package carousel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	engine "github.com/preston-bernstein/ops-console-service/internal/carousel"
	domain "github.com/preston-bernstein/ops-console-service/internal/domain/carousel"
	"github.com/preston-bernstein/ops-console-service/internal/logging"
	"github.com/preston-bernstein/ops-console-service/internal/metrics"
	"github.com/preston-bernstein/ops-console-service/internal/store"
)

// Operation names used in logs and metrics.
const (
	OpOpen    = "open"
	OpClose   = "close"
	OpAdd     = "add"
	OpRemove  = "remove"
	OpToggle  = "toggle_visible"
	OpReorder = "reorder"
	OpSave    = "save"
	OpCancel  = "cancel"
)

// Store defines the contract for holding editing sessions.
type Store interface {
	Create(entries []domain.Entry) string
	WithSession(id string, fn func(*engine.Session) error) error
	Delete(id string, force bool) error
	List() []store.Info
}

// Seed supplies the entries new sessions start from.
type Seed interface {
	Entries() []domain.Entry
}

// NoticeKind classifies a user-facing notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
)

// Notice is a message the editor should surface after an operation.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// View is the rendered state of a session.
type View struct {
	ID      string         `json:"id"`
	Dirty   bool           `json:"dirty"`
	Live    []domain.Entry `json:"live"`
	Backup  []domain.Entry `json:"backup"`
	Entries []domain.Entry `json:"entries"`
	Notice  *Notice        `json:"notice,omitempty"`
}

// Service coordinates carousel editing sessions.
type Service struct {
	store   Store
	seed    Seed
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewService constructs a Service. seed may be nil, in which case sessions start empty.
func NewService(store Store, seed Seed, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{store: store, seed: seed, logger: logger, metrics: recorder}
}

// Open starts a session from the current seed.
func (s *Service) Open(ctx context.Context) (View, error) {
	var entries []domain.Entry
	if s.seed != nil {
		entries = s.seed.Entries()
	}
	id := s.store.Create(entries)
	s.record(ctx, OpOpen, id, metrics.OutcomeOK, logging.FieldCount, len(entries))
	return s.View(ctx, id)
}

// Sessions lists the open sessions, oldest first.
func (s *Service) Sessions() []store.Info {
	return s.store.List()
}

// View returns the current state of a session.
func (s *Service) View(ctx context.Context, id string) (View, error) {
	var view View
	err := s.store.WithSession(id, func(sess *engine.Session) error {
		view = render(id, sess)
		return nil
	})
	return view, err
}

// Close ends a session. Unsaved changes block the close unless force is set.
func (s *Service) Close(ctx context.Context, id string, force bool) error {
	if err := s.store.Delete(id, force); err != nil {
		s.record(ctx, OpClose, id, metrics.OutcomeRejected, "error", err)
		return fmt.Errorf("close session: %w", err)
	}
	s.record(ctx, OpClose, id, metrics.OutcomeOK, "force", force)
	return nil
}

// AddEntry appends a default entry to the session.
func (s *Service) AddEntry(ctx context.Context, id string) (View, error) {
	return s.apply(ctx, id, OpAdd, func(sess *engine.Session) (string, *Notice, error) {
		_, err := sess.AddEntry()
		if errors.Is(err, engine.ErrCapacityExceeded) {
			return metrics.OutcomeRejected, warning(fmt.Sprintf("The carousel holds at most %d entries", domain.MaxPositions)), err
		}
		return metrics.OutcomeOK, nil, err
	})
}

// RemoveEntry deletes an entry. Unknown entry ids leave the session untouched.
func (s *Service) RemoveEntry(ctx context.Context, id, entryID string) (View, error) {
	return s.apply(ctx, id, OpRemove, func(sess *engine.Session) (string, *Notice, error) {
		if !sess.RemoveEntry(entryID) {
			return metrics.OutcomeNoop, nil, nil
		}
		return metrics.OutcomeOK, nil, nil
	}, logging.FieldEntryID, entryID)
}

// ToggleVisible flips an entry's visibility. Unknown entry ids leave the session untouched.
func (s *Service) ToggleVisible(ctx context.Context, id, entryID string) (View, error) {
	return s.apply(ctx, id, OpToggle, func(sess *engine.Session) (string, *Notice, error) {
		if _, ok := sess.ToggleVisible(entryID); !ok {
			return metrics.OutcomeNoop, nil, nil
		}
		return metrics.OutcomeOK, nil, nil
	}, logging.FieldEntryID, entryID)
}

// Reorder drops draggedID onto targetID. Illegal promotions are returned as errors with a
// warning notice on the view; a live-to-backup move that backfills slot 6 carries a
// success notice naming the promoted entry.
func (s *Service) Reorder(ctx context.Context, id, draggedID, targetID string) (View, error) {
	return s.apply(ctx, id, OpReorder, func(sess *engine.Session) (string, *Notice, error) {
		result, err := sess.Reorder(draggedID, targetID)
		switch {
		case errors.Is(err, engine.ErrIllegalPromotion):
			return metrics.OutcomeRejected, warning("Only visible entries can be moved into the live section"), err
		case err != nil:
			return metrics.OutcomeRejected, nil, err
		case !result.Moved:
			return metrics.OutcomeNoop, nil, nil
		}
		if result.Promoted != nil {
			s.metrics.RecordPromotion()
			return metrics.OutcomeOK, &Notice{
				Kind:    NoticeSuccess,
				Message: fmt.Sprintf("Promoted %q to live position %d", result.Promoted.Label(), domain.LiveCount),
			}, nil
		}
		return metrics.OutcomeOK, nil, nil
	}, "dragged_id", draggedID, "target_id", targetID)
}

// Save snapshots the working list.
func (s *Service) Save(ctx context.Context, id string) (View, error) {
	return s.apply(ctx, id, OpSave, func(sess *engine.Session) (string, *Notice, error) {
		sess.Save()
		return metrics.OutcomeOK, nil, nil
	})
}

// Cancel restores the last saved snapshot.
func (s *Service) Cancel(ctx context.Context, id string) (View, error) {
	return s.apply(ctx, id, OpCancel, func(sess *engine.Session) (string, *Notice, error) {
		sess.Cancel()
		return metrics.OutcomeOK, nil, nil
	})
}

type mutation func(*engine.Session) (outcome string, notice *Notice, err error)

func (s *Service) apply(ctx context.Context, id, op string, fn mutation, attrs ...any) (View, error) {
	var (
		view    View
		outcome string
		opErr   error
	)
	err := s.store.WithSession(id, func(sess *engine.Session) error {
		var notice *Notice
		outcome, notice, opErr = fn(sess)
		view = render(id, sess)
		view.Notice = notice
		return nil
	})
	if err != nil {
		return View{}, err
	}

	if opErr != nil {
		s.record(ctx, op, id, outcome, append(attrs, "error", opErr)...)
		return view, fmt.Errorf("%s: %w", op, opErr)
	}
	s.record(ctx, op, id, outcome, attrs...)
	return view, nil
}

func (s *Service) record(ctx context.Context, op, id, outcome string, attrs ...any) {
	s.metrics.RecordCarouselOp(op, outcome)
	args := append([]any{
		logging.FieldOperation, op,
		logging.FieldSessionID, id,
		"outcome", outcome,
	}, attrs...)
	logger := logging.FromContext(ctx, s.logger)
	if outcome == metrics.OutcomeRejected {
		logging.Warn(logger, "carousel operation rejected", args...)
		return
	}
	logging.Info(logger, "carousel operation", args...)
}

func render(id string, sess *engine.Session) View {
	return View{
		ID:      id,
		Dirty:   sess.Dirty(),
		Live:    sess.LiveEntries(),
		Backup:  sess.BackupEntries(),
		Entries: sess.Entries(),
	}
}

func warning(msg string) *Notice {
	return &Notice{Kind: NoticeWarning, Message: msg}
}
