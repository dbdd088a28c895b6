// Package sessionlog stores finished inspections newest-first and applies
// corrections to them afterwards.
package sessionlog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/kv"
)

// Log is the persisted list of finished sessions. Every mutation loads the
// whole list, changes it and writes it back; a single writer is assumed.
type Log struct {
	doc    *kv.Document[[]checklist.Session]
	logger *slog.Logger
}

// New wraps the session list document. A nil logger discards log output.
func New(doc *kv.Document[[]checklist.Session], logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Log{doc: doc, logger: logger.With("component", "sessionlog")}
}

// Append stores s as the newest session. Either the whole updated list is
// written or nothing changes.
func (l *Log) Append(ctx context.Context, s checklist.Session) error {
	sessions, tok, err := l.doc.Load(ctx)
	if err != nil {
		l.logger.Error("failed to load sessions", "error", err)
		return fmt.Errorf("%w: failed to load sessions: %w", checklist.ErrPersistence, err)
	}
	updated := make([]checklist.Session, 0, len(sessions)+1)
	updated = append(updated, s.Clone())
	updated = append(updated, sessions...)
	if err := l.save(ctx, updated, tok); err != nil {
		return err
	}
	l.logger.Info("saved session", "session", s.ID, "total", len(updated))
	return nil
}

// Replace overwrites the whole list.
func (l *Log) Replace(ctx context.Context, sessions []checklist.Session) error {
	if sessions == nil {
		sessions = []checklist.Session{}
	}
	if _, err := l.doc.Put(ctx, sessions); err != nil {
		l.logger.Error("failed to replace sessions", "error", err)
		return fmt.Errorf("%w: failed to save sessions: %w", checklist.ErrPersistence, err)
	}
	return nil
}

// All returns every session, newest first. Read failures are logged and
// reported as an empty log.
func (l *Log) All(ctx context.Context) []checklist.Session {
	sessions, _, err := l.doc.Load(ctx)
	if err != nil {
		l.logger.Error("failed to load sessions", "error", err)
		return []checklist.Session{}
	}
	if sessions == nil {
		return []checklist.Session{}
	}
	return sessions
}

// FindByID returns the session with the given id.
func (l *Log) FindByID(ctx context.Context, id string) (checklist.Session, error) {
	for _, s := range l.All(ctx) {
		if s.ID == id {
			return s, nil
		}
	}
	return checklist.Session{}, fmt.Errorf("%w: session %q", checklist.ErrNotFound, id)
}

// UpdateItemStatus sets one soldier's status for one item of a stored
// session and returns the updated session.
func (l *Log) UpdateItemStatus(ctx context.Context, sessionID, categoryID, itemID, soldierID string, status checklist.Status) (checklist.Session, error) {
	if !status.Valid() {
		return checklist.Session{}, &checklist.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}
	return l.update(ctx, sessionID, categoryID, itemID, soldierID, func(st *checklist.ItemStatus) {
		st.Status = status
	})
}

// UpdateItemDescription sets one soldier's description for one item of a
// stored session and returns the updated session. The text is trimmed.
func (l *Log) UpdateItemDescription(ctx context.Context, sessionID, categoryID, itemID, soldierID, text string) (checklist.Session, error) {
	return l.update(ctx, sessionID, categoryID, itemID, soldierID, func(st *checklist.ItemStatus) {
		st.Description = strings.TrimSpace(text)
	})
}

// MarkResolved marks one soldier's item as fulfilled.
func (l *Log) MarkResolved(ctx context.Context, sessionID, categoryID, itemID, soldierID string) (checklist.Session, error) {
	return l.UpdateItemStatus(ctx, sessionID, categoryID, itemID, soldierID, checklist.StatusFulfilled)
}

func (l *Log) update(ctx context.Context, sessionID, categoryID, itemID, soldierID string, apply func(*checklist.ItemStatus)) (checklist.Session, error) {
	sessions, tok, err := l.doc.Load(ctx)
	if err != nil {
		l.logger.Error("failed to load sessions", "error", err)
		return checklist.Session{}, fmt.Errorf("%w: failed to load sessions: %w", checklist.ErrPersistence, err)
	}

	si := -1
	for i := range sessions {
		if sessions[i].ID == sessionID {
			si = i
			break
		}
	}
	if si < 0 {
		return checklist.Session{}, fmt.Errorf("%w: session %q", checklist.ErrNotFound, sessionID)
	}
	session := &sessions[si]

	di := session.FindData(categoryID, itemID)
	if di < 0 {
		return checklist.Session{}, fmt.Errorf("%w: item %s/%s in session %q", checklist.ErrNotFound, categoryID, itemID, sessionID)
	}
	_, xi := session.Data[di].StatusFor(soldierID)
	if xi < 0 {
		return checklist.Session{}, fmt.Errorf("%w: soldier %q in session %q", checklist.ErrNotFound, soldierID, sessionID)
	}
	apply(&session.Data[di].Statuses[xi])

	if err := l.save(ctx, sessions, tok); err != nil {
		return checklist.Session{}, err
	}
	l.logger.Debug("updated session item", "session", sessionID, "category", categoryID, "item", itemID, "soldier", soldierID)
	return session.Clone(), nil
}

func (l *Log) save(ctx context.Context, sessions []checklist.Session, tok kv.Token) error {
	if _, err := l.doc.Save(ctx, sessions, tok); err != nil {
		l.logger.Error("failed to save sessions", "error", err)
		return fmt.Errorf("%w: failed to save sessions: %w", checklist.ErrPersistence, err)
	}
	return nil
}
