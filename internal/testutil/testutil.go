// Package testutil provides fixtures and fake stores shared by kts tests.
package testutil

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/kv"
)

// ErrInjected is returned by FailingStore when a failure is switched on.
var ErrInjected = errors.New("injected store failure")

// FailingStore wraps a store and fails reads or writes on demand.
type FailingStore struct {
	kv.Store

	mu       sync.Mutex
	failGet  bool
	failSet  bool
	setCalls int
}

// NewFailingStore wraps an in-memory store.
func NewFailingStore() *FailingStore {
	return &FailingStore{Store: kv.NewMemoryStore()}
}

// FailReads makes every Get fail until switched off.
func (s *FailingStore) FailReads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGet = fail
}

// FailWrites makes every Set and RemoveAll fail until switched off.
func (s *FailingStore) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSet = fail
}

// SetCalls returns how many Set calls were attempted.
func (s *FailingStore) SetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCalls
}

func (s *FailingStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	fail := s.failGet
	s.mu.Unlock()
	if fail {
		return nil, ErrInjected
	}
	return s.Store.Get(ctx, key)
}

func (s *FailingStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.setCalls++
	fail := s.failSet
	s.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return s.Store.Set(ctx, key, value)
}

func (s *FailingStore) RemoveAll(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	fail := s.failSet
	s.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return s.Store.RemoveAll(ctx, keys...)
}

// DataDir returns a fresh data directory, resolving symlinks (for macOS),
// and points KTS_DATA_DIR at it for the duration of the test.
func DataDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	// Resolve symlinks for macOS (/var -> /private/var)
	if resolved, err := filepath.EvalSymlinks(dir); err != nil {
		t.Logf("warning: could not resolve symlinks for temp dir: %v", err)
	} else {
		dir = resolved
	}
	t.Setenv("KTS_DATA_DIR", dir)
	return dir
}

// GearChecklist returns one category, "Personal Gear", holding "Uniform"
// and "Boots".
func GearChecklist() []checklist.Category {
	return []checklist.Category{
		{ID: "cat-gear", Name: "Personal Gear", Items: []checklist.Item{
			{ID: "item-uniform", Name: "Uniform", CategoryID: "cat-gear"},
			{ID: "item-boots", Name: "Boots", CategoryID: "cat-gear"},
		}},
	}
}

// TwoCategoryChecklist returns "Personal Gear" (Uniform, Boots) followed by
// "Comms" (Radio).
func TwoCategoryChecklist() []checklist.Category {
	return append(GearChecklist(), checklist.Category{
		ID: "cat-comms", Name: "Comms", Items: []checklist.Item{
			{ID: "item-radio", Name: "Radio", CategoryID: "cat-comms"},
		},
	})
}

// Squad returns a squad named "Lag 1" with soldiers A and B.
func Squad() *checklist.SquadSettings {
	return &checklist.SquadSettings{
		SquadName: "Lag 1",
		Soldiers: []checklist.Soldier{
			{ID: "sol-a", Name: "A", Role: "Lagfører"},
			{ID: "sol-b", Name: "B"},
		},
	}
}
