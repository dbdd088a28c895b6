package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/config"
	"github.com/pablasso/kts/internal/report"
	"github.com/pablasso/kts/internal/testutil"
)

// run executes kts with args against dir and returns the combined output.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data-dir", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	if err != nil {
		t.Fatalf("kts %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

// seedSession stores a session over the default checklist in which the
// second soldier misses the first item.
func seedSession(t *testing.T, dir string) checklist.Session {
	t.Helper()
	app, err := config.Open(config.Config{DataDir: dir, Backend: "file"})
	if err != nil {
		t.Fatal(err)
	}
	defer app.Close()

	ctx := context.Background()
	squad := app.Storage.GetSquadSettings(ctx)
	if squad == nil {
		t.Fatal("seedSession needs a squad")
	}
	cats := app.Storage.GetChecklist(ctx)
	var data []checklist.SessionItemData
	for _, c := range cats {
		for _, it := range c.Items {
			d := checklist.SessionItemData{CategoryID: c.ID, ItemID: it.ID}
			for _, s := range squad.Soldiers {
				d.Statuses = append(d.Statuses, checklist.ItemStatus{SoldierID: s.ID, Status: checklist.StatusFulfilled})
			}
			data = append(data, d)
		}
	}
	data[0].Statuses[1] = checklist.ItemStatus{SoldierID: squad.Soldiers[1].ID, Status: checklist.StatusMissing, Description: "revet"}

	s := checklist.Session{
		ID:        "session-seed",
		Date:      "4.3.2026",
		Time:      "09:05",
		Timestamp: time.Now().Add(-2 * time.Hour).UnixMilli(),
		Duration:  "1:15",
		SquadName: squad.SquadName,
		Soldiers:  squad.Soldiers,
		Data:      data,
	}
	if err := app.Sessions.Append(ctx, s); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSetupAndSquad(t *testing.T) {
	dir := testutil.DataDir(t)

	out := mustRun(t, dir, "setup", "--squad", "2 Alfa", "--soldier", "Ola:Lagfører", "--soldier", "Kari")
	if !strings.Contains(out, `"2 Alfa" set up with 2 soldier(s)`) {
		t.Errorf("unexpected setup output: %s", out)
	}

	out = mustRun(t, dir, "squad", "show")
	for _, want := range []string{"Squad: 2 Alfa", "Ola", "Lagfører", "Kari"} {
		if !strings.Contains(out, want) {
			t.Errorf("squad show missing %q:\n%s", want, out)
		}
	}

	mustRun(t, dir, "squad", "rename", "2 Bravo")
	mustRun(t, dir, "squad", "add-soldier", "Per", "--role", "Sanitet")
	out = mustRun(t, dir, "squad", "show")
	if !strings.Contains(out, "2 Bravo") || !strings.Contains(out, "Sanitet") {
		t.Errorf("edits not stored:\n%s", out)
	}
}

func TestSetup_Validation(t *testing.T) {
	dir := testutil.DataDir(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no soldiers", []string{"setup", "--squad", "2 Alfa"}},
		{"no squad name", []string{"setup", "--soldier", "Ola"}},
		{"blank soldier", []string{"setup", "--squad", "2 Alfa", "--soldier", " :Lagfører"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, dir, tt.args...); !errors.Is(err, checklist.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSquad_RequiresSetup(t *testing.T) {
	dir := testutil.DataDir(t)
	if _, err := run(t, dir, "squad", "show"); !errors.Is(err, checklist.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestSquad_RemoveLastSoldier(t *testing.T) {
	dir := testutil.DataDir(t)
	mustRun(t, dir, "setup", "--squad", "2 Alfa", "--soldier", "Ola")

	app, err := config.Open(config.Config{DataDir: dir, Backend: "file"})
	if err != nil {
		t.Fatal(err)
	}
	id := app.Storage.GetSquadSettings(context.Background()).Soldiers[0].ID
	app.Close()

	if _, err := run(t, dir, "squad", "remove-soldier", id); !errors.Is(err, checklist.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if _, err := run(t, dir, "squad", "set-role", "soldier-nope", "X"); !errors.Is(err, checklist.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestParseSoldier(t *testing.T) {
	tests := []struct {
		entry, name, role string
	}{
		{"Ola", "Ola", ""},
		{"Ola:Lagfører", "Ola", "Lagfører"},
		{" Ola : Nestlagfører ", "Ola", "Nestlagfører"},
		{"Ola:", "Ola", ""},
	}
	for _, tt := range tests {
		name, role := parseSoldier(tt.entry)
		if name != tt.name || role != tt.role {
			t.Errorf("parseSoldier(%q) = (%q, %q), want (%q, %q)", tt.entry, name, role, tt.name, tt.role)
		}
	}
}

func TestChecklistCommands(t *testing.T) {
	dir := testutil.DataDir(t)

	out := mustRun(t, dir, "checklist", "show")
	if !strings.Contains(out, "Personlig Utstyr") || !strings.Contains(out, "item-1-1") {
		t.Errorf("expected default checklist:\n%s", out)
	}

	mustRun(t, dir, "checklist", "rename-item", "cat-1", "item-1-1", "Feltuniform")
	mustRun(t, dir, "checklist", "delete-category", "cat-3")
	out = mustRun(t, dir, "checklist", "add-category", "Sanitet")
	if !strings.Contains(out, `Added category "Sanitet"`) {
		t.Errorf("unexpected output: %s", out)
	}

	out = mustRun(t, dir, "checklist", "show")
	if !strings.Contains(out, "Feltuniform") || !strings.Contains(out, "Sanitet") {
		t.Errorf("edits missing:\n%s", out)
	}
	if strings.Contains(out, "Kommunikasjon") {
		t.Errorf("deleted category still shown:\n%s", out)
	}

	if _, err := run(t, dir, "checklist", "add-item", "cat-nope", "Radio"); !errors.Is(err, checklist.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := run(t, dir, "checklist", "rename-category", "cat-1", "  "); !errors.Is(err, checklist.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestLogCommands(t *testing.T) {
	dir := testutil.DataDir(t)

	out := mustRun(t, dir, "log", "list")
	if !strings.Contains(out, "No sessions yet.") {
		t.Errorf("expected empty log message, got %s", out)
	}

	mustRun(t, dir, "setup", "--squad", "2 Alfa", "--soldier", "Ola:Lagfører", "--soldier", "Kari")
	s := seedSession(t, dir)

	out = mustRun(t, dir, "log", "list")
	for _, want := range []string{"session-seed", "2 Alfa", "1:15", "2 hours ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("log list missing %q:\n%s", want, out)
		}
	}

	kari := s.Soldiers[1].ID
	out = mustRun(t, dir, "log", "show", "session-seed")
	if !strings.Contains(out, "Uniform") || !strings.Contains(out, "revet") || !strings.Contains(out, "cat-1 item-1-1 "+kari) {
		t.Errorf("log show missing the missing item:\n%s", out)
	}

	mustRun(t, dir, "log", "describe", "session-seed", "cat-1", "item-1-1", kari, "revet i ermet")
	out = mustRun(t, dir, "log", "export", "session-seed")
	if !strings.Contains(out, "KTS Oppsummering") || !strings.Contains(out, "  ✗ Uniform - revet i ermet") {
		t.Errorf("unexpected export:\n%s", out)
	}

	out = mustRun(t, dir, "log", "resolve", "session-seed", "cat-1", "item-1-1", kari)
	if !strings.Contains(out, "0 missing item(s) left") {
		t.Errorf("unexpected resolve output: %s", out)
	}

	if _, err := run(t, dir, "log", "resolve", "session-nope", "cat-1", "item-1-1", kari); !errors.Is(err, checklist.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	out = mustRun(t, dir, "journal")
	if !strings.Contains(out, "description_edited") || !strings.Contains(out, "item_resolved") {
		t.Errorf("journal missing events:\n%s", out)
	}
}

func TestLogShow_DeletedItemIsOmitted(t *testing.T) {
	dir := testutil.DataDir(t)
	mustRun(t, dir, "setup", "--squad", "2 Alfa", "--soldier", "Ola", "--soldier", "Kari")
	seedSession(t, dir)

	mustRun(t, dir, "checklist", "delete-item", "cat-1", "item-1-1")

	out := mustRun(t, dir, "log", "show", "session-seed")
	if !strings.Contains(out, "No missing items.") {
		t.Errorf("orphaned item should be omitted:\n%s", out)
	}
}

func TestLogExport_Copy(t *testing.T) {
	dir := testutil.DataDir(t)
	mustRun(t, dir, "setup", "--squad", "2 Alfa", "--soldier", "Ola", "--soldier", "Kari")
	seedSession(t, dir)

	orig := report.Copy
	t.Cleanup(func() { report.Copy = orig })
	var copied string
	report.Copy = func(text string) error {
		copied = text
		return nil
	}

	out := mustRun(t, dir, "log", "export", "session-seed", "--copy")
	if copied == "" || !strings.HasPrefix(out, copied) {
		t.Errorf("expected printed text to be copied, got %q", copied)
	}
}

func TestReset(t *testing.T) {
	dir := testutil.DataDir(t)
	mustRun(t, dir, "setup", "--squad", "2 Alfa", "--soldier", "Ola")

	if _, err := run(t, dir, "reset"); err == nil {
		t.Error("reset without --yes should fail")
	}
	mustRun(t, dir, "reset", "--yes")
	if _, err := run(t, dir, "squad", "show"); !errors.Is(err, checklist.ErrConfiguration) {
		t.Errorf("squad should be gone after reset, got %v", err)
	}
}

func TestRoot_NoArgsOpensTUI(t *testing.T) {
	dir := testutil.DataDir(t)

	orig := runTUI
	t.Cleanup(func() { runTUI = orig })
	var got *config.App
	runTUI = func(app *config.App) error {
		got = app
		return nil
	}

	mustRun(t, dir)
	if got == nil {
		t.Fatal("expected the TUI to be opened")
	}
	if got.Config.DataDir != dir {
		t.Errorf("data dir = %q, want %q", got.Config.DataDir, dir)
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"just now for less than a minute", 30 * time.Second, "just now"},
		{"just now for 0 seconds", 0, "just now"},
		{"5 minutes ago", 5 * time.Minute, "5 minutes ago"},
		{"1 hour ago", 1 * time.Hour, "1 hour ago"},
		{"23 hours ago", 23 * time.Hour, "23 hours ago"},
		{"1 day ago", 24 * time.Hour, "1 day ago"},
		{"3 days ago", 72 * time.Hour, "3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatAge(time.Now().Add(-tt.duration))
			if got != tt.want {
				t.Errorf("formatAge() = %q, want %q", got, tt.want)
			}
		})
	}
}
