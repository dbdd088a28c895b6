// Package inspection runs one equipment inspection from the first category
// banner to the saved session.
//
// An Engine walks the checklist as a linear sequence of screens:
//
//	category(0) → item(0,0) → … → item(0,last) → category(1) → … → summary
//
// Each item screen collects one status per soldier in the roster snapshot.
// Nothing is written anywhere until Finish hands the session to an Appender.
package inspection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/util"
)

// Display formats for the session date and time.
const (
	DateLayout = "2.1.2006"
	TimeLayout = "15:04"
)

var (
	// ErrNoCurrentItem is returned by item operations on a category banner or
	// the summary screen.
	ErrNoCurrentItem = errors.New("no item selected")

	// ErrNotAtSummary is returned by Finish before the summary screen.
	ErrNotAtSummary = errors.New("inspection is not at the summary")

	// ErrClosed is returned once the run was finished or exited.
	ErrClosed = errors.New("inspection is closed")

	// ErrAtSummary is returned by Exit on the summary screen, where the run
	// can only be finished or stepped back from.
	ErrAtSummary = errors.New("inspection is at the summary")
)

// Screen is the kind of screen the run is on.
type Screen int

const (
	ScreenCategory Screen = iota
	ScreenItem
	ScreenSummary
)

func (s Screen) String() string {
	switch s {
	case ScreenCategory:
		return "category"
	case ScreenItem:
		return "item"
	case ScreenSummary:
		return "summary"
	}
	return fmt.Sprintf("Screen(%d)", int(s))
}

// State is a copy of the engine's position and collected data.
type State struct {
	Screen         Screen
	CategoryIndex  int
	ItemIndex      int // -1 while on a category banner
	Data           []checklist.SessionItemData
	StartTimestamp int64
}

// Appender persists a finished session.
type Appender interface {
	Append(ctx context.Context, s checklist.Session) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDFunc replaces the session id generator.
func WithIDFunc(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// WithNames sets where display names are resolved from when the summary is
// built. By default the checklist passed to New is used. The stored session
// only keeps ids, so names reflect the checklist at summary time.
func WithNames(fn func() []checklist.Category) Option {
	return func(e *Engine) { e.names = fn }
}

// Engine drives one inspection run. It is not safe for concurrent use.
type Engine struct {
	categories []checklist.Category // navigable categories, none empty
	squad      checklist.SquadSettings
	names      func() []checklist.Category
	now        func() time.Time
	newID      func() string

	id        string
	screen    Screen
	cat       int
	item      int
	data      []checklist.SessionItemData
	start     time.Time
	summaryAt time.Time
	closed    bool
}

// New starts a run over categories for the given squad. Categories without
// items are skipped. It fails with checklist.ErrConfiguration when there is
// no squad, no soldier or no item to inspect.
func New(categories []checklist.Category, squad *checklist.SquadSettings, opts ...Option) (*Engine, error) {
	if squad == nil {
		return nil, fmt.Errorf("%w: no squad configured", checklist.ErrConfiguration)
	}
	if len(squad.Soldiers) == 0 {
		return nil, fmt.Errorf("%w: squad has no soldiers", checklist.ErrConfiguration)
	}

	e := &Engine{
		squad: squad.Clone(),
		now:   time.Now,
		newID: func() string { return util.NewID("session") },
	}
	for _, c := range checklist.Clone(categories) {
		if len(c.Items) > 0 {
			e.categories = append(e.categories, c)
		}
	}
	if len(e.categories) == 0 {
		return nil, fmt.Errorf("%w: checklist has no items", checklist.ErrConfiguration)
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.names == nil {
		snapshot := checklist.Clone(e.categories)
		e.names = func() []checklist.Category { return snapshot }
	}

	for _, c := range e.categories {
		for _, it := range c.Items {
			statuses := make([]checklist.ItemStatus, len(e.squad.Soldiers))
			for i, s := range e.squad.Soldiers {
				statuses[i] = checklist.ItemStatus{SoldierID: s.ID, Status: checklist.StatusUnchecked}
			}
			e.data = append(e.data, checklist.SessionItemData{
				CategoryID: c.ID,
				ItemID:     it.ID,
				Statuses:   statuses,
			})
		}
	}

	e.id = e.newID()
	e.screen = ScreenCategory
	e.cat = 0
	e.item = -1
	e.start = e.now()
	return e, nil
}

// ID returns the id the session will be saved under.
func (e *Engine) ID() string {
	return e.id
}

// Closed reports whether the run was finished or exited.
func (e *Engine) Closed() bool {
	return e.closed
}

// Screen returns the current screen.
func (e *Engine) Screen() Screen {
	return e.screen
}

// Position returns the category and item indices. The item index is -1 on a
// category banner.
func (e *Engine) Position() (int, int) {
	return e.cat, e.item
}

// State returns a deep copy of the run state.
func (e *Engine) State() State {
	return State{
		Screen:         e.screen,
		CategoryIndex:  e.cat,
		ItemIndex:      e.item,
		Data:           checklist.CloneData(e.data),
		StartTimestamp: e.start.UnixMilli(),
	}
}

// Categories returns the categories being inspected.
func (e *Engine) Categories() []checklist.Category {
	return checklist.Clone(e.categories)
}

// Roster returns the soldiers snapshot taken at start.
func (e *Engine) Roster() []checklist.Soldier {
	return append([]checklist.Soldier(nil), e.squad.Soldiers...)
}

// SquadName returns the squad name snapshot taken at start.
func (e *Engine) SquadName() string {
	return e.squad.SquadName
}

// CurrentCategory returns the category of the current position. On the
// summary screen it is the last category.
func (e *Engine) CurrentCategory() checklist.Category {
	return e.categories[e.cat]
}

// CurrentItem returns the item being inspected.
func (e *Engine) CurrentItem() (checklist.Item, bool) {
	if e.screen != ScreenItem {
		return checklist.Item{}, false
	}
	return e.categories[e.cat].Items[e.item], true
}

// CurrentStatuses returns a copy of the statuses for the current item.
func (e *Engine) CurrentStatuses() []checklist.ItemStatus {
	d := e.current()
	if d == nil {
		return nil
	}
	return append([]checklist.ItemStatus(nil), d.Statuses...)
}

// current returns the data entry for the current item, or nil off an item
// screen. Data is laid out in navigation order.
func (e *Engine) current() *checklist.SessionItemData {
	if e.screen != ScreenItem {
		return nil
	}
	idx := e.item
	for c := 0; c < e.cat; c++ {
		idx += len(e.categories[c].Items)
	}
	return &e.data[idx]
}

func (e *Engine) lastItem(c int) int {
	return len(e.categories[c].Items) - 1
}

// Next advances one screen. It is a no-op on the summary screen.
func (e *Engine) Next() error {
	if e.closed {
		return ErrClosed
	}
	switch e.screen {
	case ScreenCategory:
		e.screen, e.item = ScreenItem, 0
	case ScreenItem:
		switch {
		case e.item < e.lastItem(e.cat):
			e.item++
		case e.cat < len(e.categories)-1:
			e.screen, e.cat, e.item = ScreenCategory, e.cat+1, -1
		default:
			e.screen = ScreenSummary
			e.summaryAt = e.now()
		}
	}
	return nil
}

// Previous goes back one screen. It is a no-op on the first category banner.
// From the summary it returns to the last item.
func (e *Engine) Previous() error {
	if e.closed {
		return ErrClosed
	}
	switch e.screen {
	case ScreenItem:
		if e.item > 0 {
			e.item--
		} else {
			e.screen, e.item = ScreenCategory, -1
		}
	case ScreenCategory:
		if e.cat > 0 {
			e.screen, e.cat = ScreenItem, e.cat-1
			e.item = e.lastItem(e.cat)
		}
	case ScreenSummary:
		e.screen = ScreenItem
		e.cat = len(e.categories) - 1
		e.item = e.lastItem(e.cat)
		e.summaryAt = time.Time{}
	}
	return nil
}

// SetStatus sets one soldier's status for the current item. Unknown soldiers
// are ignored. The description is kept.
func (e *Engine) SetStatus(soldierID string, status checklist.Status) error {
	if e.closed {
		return ErrClosed
	}
	if !status.Valid() {
		return &checklist.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}
	d := e.current()
	if d == nil {
		return ErrNoCurrentItem
	}
	if _, i := d.StatusFor(soldierID); i >= 0 {
		d.Statuses[i].Status = status
	}
	return nil
}

// SetDescription sets one soldier's description for the current item. The
// text is trimmed; empty text clears it. Unknown soldiers are ignored.
func (e *Engine) SetDescription(soldierID, text string) error {
	if e.closed {
		return ErrClosed
	}
	d := e.current()
	if d == nil {
		return ErrNoCurrentItem
	}
	if _, i := d.StatusFor(soldierID); i >= 0 {
		d.Statuses[i].Description = strings.TrimSpace(text)
	}
	return nil
}

// AllOK marks every soldier fulfilled for the current item and advances.
func (e *Engine) AllOK() error {
	if e.closed {
		return ErrClosed
	}
	d := e.current()
	if d == nil {
		return ErrNoCurrentItem
	}
	for i := range d.Statuses {
		d.Statuses[i].Status = checklist.StatusFulfilled
	}
	return e.Next()
}

// Progress returns the completion percentage for display.
func (e *Engine) Progress() int {
	if e.screen == ScreenSummary {
		return 100
	}
	total := checklist.TotalItems(e.categories)
	done := 0
	for c := 0; c < e.cat; c++ {
		done += len(e.categories[c].Items)
	}
	if e.item >= 0 {
		done += e.item + 1
	}
	return done * 100 / total
}

// Summary builds the end-of-run report. On the summary screen it is stamped
// with the time the screen was entered, so repeated calls agree; elsewhere it
// uses the current time.
func (e *Engine) Summary() checklist.Summary {
	at := e.summaryAt
	if e.screen != ScreenSummary || at.IsZero() {
		at = e.now()
	}
	return e.buildSummary(at)
}

func (e *Engine) buildSummary(at time.Time) checklist.Summary {
	names := e.names()
	summaries := make([]checklist.SoldierSummary, len(e.squad.Soldiers))
	for i, s := range e.squad.Soldiers {
		missing := checklist.MissingItemsFor(e.data, s.ID, names)
		if missing == nil {
			missing = []checklist.MissingItem{}
		}
		summaries[i] = checklist.SoldierSummary{Soldier: s, MissingItems: missing}
	}
	return checklist.Summary{
		ID:               e.id,
		Date:             at.Format(DateLayout),
		Time:             at.Format(TimeLayout),
		Timestamp:        at.UnixMilli(),
		Duration:         FormatDuration(at.Sub(e.start)),
		SquadName:        e.squad.SquadName,
		SoldierSummaries: summaries,
	}
}

// Finish saves the run through app. It only works on the summary screen. If
// saving fails the engine is left as it was and Finish may be called again.
func (e *Engine) Finish(ctx context.Context, app Appender) (checklist.Session, error) {
	if e.closed {
		return checklist.Session{}, ErrClosed
	}
	if e.screen != ScreenSummary {
		return checklist.Session{}, ErrNotAtSummary
	}

	summary := e.Summary()
	session := checklist.Session{
		ID:             summary.ID,
		Date:           summary.Date,
		Time:           summary.Time,
		Timestamp:      summary.Timestamp,
		StartTimestamp: e.start.UnixMilli(),
		EndTimestamp:   e.now().UnixMilli(),
		Duration:       summary.Duration,
		SquadName:      e.squad.SquadName,
		Soldiers:       e.Roster(),
		Data:           checklist.CloneData(e.data),
	}
	if err := app.Append(ctx, session); err != nil {
		if errors.Is(err, checklist.ErrPersistence) {
			return checklist.Session{}, err
		}
		return checklist.Session{}, fmt.Errorf("%w: failed to save session: %w", checklist.ErrPersistence, err)
	}
	e.closed = true
	return session, nil
}

// Exit abandons the run from a category or item screen. Nothing is saved.
func (e *Engine) Exit() error {
	if e.closed {
		return ErrClosed
	}
	if e.screen == ScreenSummary {
		return ErrAtSummary
	}
	e.closed = true
	return nil
}

// FormatDuration renders d as minutes:seconds with two-digit seconds.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
