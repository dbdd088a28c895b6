// Package journal keeps an append-only JSON Lines record of inspection
// events in the data directory.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const fileName = "journal.jsonl"

// Event types.
const (
	EventSessionStarted    = "session_started"
	EventSessionFinished   = "session_finished"
	EventSessionExited     = "session_exited"
	EventItemResolved      = "item_resolved"
	EventDescriptionEdited = "description_edited"
)

// Event is one journal line.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Event     string         `json:"event"`
	Data      map[string]any `json:"data,omitempty"`
}

// Journal appends events to a file.
type Journal struct {
	path string
	now  func() time.Time
}

// New creates a journal stored in dir.
func New(dir string) *Journal {
	return &Journal{path: filepath.Join(dir, fileName), now: time.Now}
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// Log appends an event.
func (j *Journal) Log(event string, data map[string]any) error {
	entry := Event{
		Timestamp: j.now(),
		Event:     event,
		Data:      data,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	_, err = f.Write(line)
	return err
}

// SessionStarted logs the start of an inspection.
func (j *Journal) SessionStarted(sessionID, squadName string, soldiers, items int) error {
	return j.Log(EventSessionStarted, map[string]any{
		"session_id": sessionID,
		"squad":      squadName,
		"soldiers":   soldiers,
		"items":      items,
	})
}

// SessionFinished logs a saved inspection.
func (j *Journal) SessionFinished(sessionID string, missing int, duration time.Duration) error {
	return j.Log(EventSessionFinished, map[string]any{
		"session_id":  sessionID,
		"missing":     missing,
		"duration_ms": duration.Milliseconds(),
	})
}

// SessionExited logs an abandoned inspection.
func (j *Journal) SessionExited(sessionID string) error {
	return j.Log(EventSessionExited, map[string]any{
		"session_id": sessionID,
	})
}

// ItemResolved logs a missing item marked OK after the fact.
func (j *Journal) ItemResolved(sessionID, categoryID, itemID, soldierID string) error {
	return j.Log(EventItemResolved, map[string]any{
		"session_id":  sessionID,
		"category_id": categoryID,
		"item_id":     itemID,
		"soldier_id":  soldierID,
	})
}

// DescriptionEdited logs a description change on a stored session.
func (j *Journal) DescriptionEdited(sessionID, categoryID, itemID, soldierID string) error {
	return j.Log(EventDescriptionEdited, map[string]any{
		"session_id":  sessionID,
		"category_id": categoryID,
		"item_id":     itemID,
		"soldier_id":  soldierID,
	})
}

// Read returns every event in the journal, oldest first. A missing journal
// has no events.
func (j *Journal) Read() ([]Event, error) {
	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	var events []Event
	line := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("failed to parse journal line %d: %w", line, err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return events, nil
}
