// Package storage maps the app's fixed keys onto typed documents.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/kv"
)

// Storage keys.
const (
	KeySquadSettings = "@squad_settings"
	KeyChecklist     = "@checklist"
	KeySessions      = "@sessions"
	KeySetupComplete = "@setup_complete"
)

// Storage reads and writes squad settings, the checklist, the session list
// and the setup flag. Reads recover to a default and log the failure; writes
// surface failures as checklist.ErrPersistence.
type Storage struct {
	store  kv.Store
	logger *slog.Logger

	squad     *kv.Document[*checklist.SquadSettings]
	checklist *kv.Document[[]checklist.Category]
	sessions  *kv.Document[[]checklist.Session]
	setup     *kv.Document[bool]
}

// New wraps a store. A nil logger discards log output.
func New(store kv.Store, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Storage{
		store:     store,
		logger:    logger.With("component", "storage"),
		squad:     kv.NewDocument[*checklist.SquadSettings](store, KeySquadSettings, nil),
		checklist: kv.NewDocument(store, KeyChecklist, checklist.Default),
		sessions:  kv.NewDocument(store, KeySessions, func() []checklist.Session { return []checklist.Session{} }),
		setup:     kv.NewDocument[bool](store, KeySetupComplete, nil),
	}
}

// Sessions returns the session list document, shared with the session log.
func (s *Storage) Sessions() *kv.Document[[]checklist.Session] {
	return s.sessions
}

// GetSquadSettings returns the stored squad, or nil when none is stored or
// it cannot be read.
func (s *Storage) GetSquadSettings(ctx context.Context) *checklist.SquadSettings {
	squad, _, err := s.squad.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load squad settings", "error", err)
		return nil
	}
	return squad
}

// SetSquadSettings validates and stores the squad.
func (s *Storage) SetSquadSettings(ctx context.Context, squad checklist.SquadSettings) error {
	squad = squad.Normalize()
	if err := squad.Validate(); err != nil {
		return err
	}
	if _, err := s.squad.Put(ctx, &squad); err != nil {
		s.logger.Error("failed to save squad settings", "error", err)
		return fmt.Errorf("%w: failed to save squad settings: %w", checklist.ErrPersistence, err)
	}
	s.logger.Debug("saved squad settings", "soldiers", len(squad.Soldiers))
	return nil
}

// GetChecklist returns the stored checklist, falling back to the built-in
// default when nothing is stored or the stored value cannot be read.
func (s *Storage) GetChecklist(ctx context.Context) []checklist.Category {
	categories, _, err := s.checklist.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load checklist", "error", err)
		return checklist.Default()
	}
	return categories
}

// SetChecklist stores the checklist.
func (s *Storage) SetChecklist(ctx context.Context, categories []checklist.Category) error {
	if _, err := s.checklist.Put(ctx, categories); err != nil {
		s.logger.Error("failed to save checklist", "error", err)
		return fmt.Errorf("%w: failed to save checklist: %w", checklist.ErrPersistence, err)
	}
	s.logger.Debug("saved checklist", "categories", len(categories))
	return nil
}

// IsSetupComplete reports the setup flag; read failures count as not set up.
func (s *Storage) IsSetupComplete(ctx context.Context) bool {
	done, _, err := s.setup.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load setup flag", "error", err)
		return false
	}
	return done
}

// SetSetupComplete stores the setup flag.
func (s *Storage) SetSetupComplete(ctx context.Context, done bool) error {
	if _, err := s.setup.Put(ctx, done); err != nil {
		s.logger.Error("failed to save setup flag", "error", err)
		return fmt.Errorf("%w: failed to save setup flag: %w", checklist.ErrPersistence, err)
	}
	return nil
}

// ClearAll removes every key the app owns.
func (s *Storage) ClearAll(ctx context.Context) error {
	if err := s.store.RemoveAll(ctx, KeySquadSettings, KeyChecklist, KeySessions, KeySetupComplete); err != nil {
		s.logger.Error("failed to clear storage", "error", err)
		return fmt.Errorf("%w: failed to clear storage: %w", checklist.ErrPersistence, err)
	}
	s.logger.Info("cleared all stored data")
	return nil
}
