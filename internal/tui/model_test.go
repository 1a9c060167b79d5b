package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/d100/internal/errors"
	"github.com/agbru/d100/internal/format"
	"github.com/agbru/d100/internal/grid"
	"github.com/agbru/d100/internal/roll"
	"github.com/agbru/d100/internal/roll/rolltest"
)

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	hKey     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}}
	fKey     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}}
	qKey     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestModel(t *testing.T) (Model, *roll.Machine, *rolltest.ManualScheduler, *fakeClock) {
	t.Helper()
	sched := rolltest.NewManualScheduler()
	machine := roll.New(
		roll.WithScheduler(sched),
		roll.WithSource(grid.NewSource(7)),
	)
	t.Cleanup(machine.Close)

	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewModel(context.Background(), machine, Options{RepeatWindow: 200 * time.Millisecond})
	m.now = clock.now
	return m, machine, sched, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

// drain applies the latest published snapshot, the way the program loop
// would after the wait command returns.
func drain(t *testing.T, m Model) Model {
	t.Helper()
	msg := waitForSnapshotCmd(m.snapshots)()
	m, _ = update(t, m, msg)
	return m
}

func TestModel_InitialView(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	view := m.View()
	for _, want := range []string{"D100", "Result: " + format.NoResult, "Ready to roll", "space roll"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q\n%s", want, view)
		}
	}
	if strings.Contains(view, "History") {
		t.Error("history panel should start closed")
	}
}

func TestModel_RollKeyStartsOneCycle(t *testing.T) {
	m, machine, sched, clock := newTestModel(t)

	m, _ = update(t, m, spaceKey)
	if m.snapshot.Phase != roll.PhaseRandomizing {
		t.Fatalf("phase = %v, want randomizing", m.snapshot.Phase)
	}
	if !strings.Contains(m.View(), "Randomizing...") {
		t.Error("view should show the randomizing status")
	}
	rollID := m.snapshot.RollID

	clock.t = clock.t.Add(30 * time.Millisecond)
	m, _ = update(t, m, spaceKey)
	clock.t = clock.t.Add(time.Second)
	m, _ = update(t, m, spaceKey)
	if got := machine.Snapshot().RollID; got != rollID {
		t.Errorf("a press during a roll must not start another cycle")
	}

	sched.Advance(machine.Timings().Total())
	m = drain(t, m)
	if m.snapshot.Phase != roll.PhaseSorted {
		t.Fatalf("phase = %v, want sorted", m.snapshot.Phase)
	}
	if len(m.snapshot.History) != 1 {
		t.Fatalf("history = %v, want one entry", m.snapshot.History)
	}
	if !strings.Contains(m.View(), format.DotsFound(m.snapshot.Result)) {
		t.Error("view should show the result sentence")
	}
}

func TestModel_HeldKeyIsFiltered(t *testing.T) {
	m, machine, sched, clock := newTestModel(t)

	m, _ = update(t, m, spaceKey)
	sched.Advance(machine.Timings().Total())
	m = drain(t, m)

	// Auto-repeat keeps arriving faster than the window after the cycle ends.
	clock.t = clock.t.Add(150 * time.Millisecond)
	m, _ = update(t, m, spaceKey)
	if m.snapshot.Phase != roll.PhaseSorted {
		t.Errorf("repeat press should be ignored, phase = %v", m.snapshot.Phase)
	}

	clock.t = clock.t.Add(500 * time.Millisecond)
	m, _ = update(t, m, spaceKey)
	if m.snapshot.Phase != roll.PhaseRandomizing {
		t.Errorf("fresh press should roll, phase = %v", m.snapshot.Phase)
	}
}

func TestModel_StaleSnapshotDropped(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m, _ = update(t, m, spaceKey)
	current := m.snapshot

	stale := current
	stale.Version--
	stale.Phase = roll.PhaseIdle
	m, cmd := update(t, m, SnapshotMsg{Snapshot: stale})

	if m.snapshot.Version != current.Version || m.snapshot.Phase != roll.PhaseRandomizing {
		t.Error("an older snapshot must not replace a newer one")
	}
	if cmd == nil {
		t.Error("the wait command should be re-armed")
	}
}

func TestModel_Toggles(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m, _ = update(t, m, hKey)
	if !m.historyOpen || !strings.Contains(m.View(), "No rolls yet") {
		t.Error("h should open the history panel")
	}
	m, _ = update(t, m, hKey)
	if m.historyOpen {
		t.Error("h should close the history panel")
	}

	m, cmd := update(t, m, fKey)
	if !m.fullscreen || cmd == nil {
		t.Error("f should enter fullscreen")
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	if lines := strings.Count(m.View(), "\n") + 1; lines != 40 {
		t.Errorf("fullscreen view should fill the height, got %d lines", lines)
	}
	m, cmd = update(t, m, fKey)
	if m.fullscreen || cmd == nil {
		t.Error("f should leave fullscreen")
	}
}

func TestModel_QuitClosesMachine(t *testing.T) {
	m, machine, sched, _ := newTestModel(t)

	m, _ = update(t, m, spaceKey)
	before := machine.Snapshot()

	m, cmd := update(t, m, qKey)
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}

	sched.Advance(machine.Timings().Total())
	after := machine.Snapshot()
	if after.Phase != before.Phase || after.Version != before.Version {
		t.Error("no state change may happen after quit")
	}
	if machine.Roll() {
		t.Error("a closed machine must ignore rolls")
	}
	if _, ok := waitForSnapshotCmd(m.snapshots)().(SubscriptionClosedMsg); !ok {
		t.Error("the subscription should be closed after quit")
	}
}

func TestModel_ContextCancelled(t *testing.T) {
	m, machine, _, _ := newTestModel(t)

	m, cmd := update(t, m, ContextCancelledMsg{Err: context.Canceled})
	if m.ExitCode() != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", m.ExitCode(), apperrors.ExitErrorCanceled)
	}
	if cmd == nil {
		t.Fatal("cancellation should quit")
	}
	if machine.Roll() {
		t.Error("machine should be closed on cancellation")
	}
}

func TestRenderResult_Placeholder(t *testing.T) {
	s := roll.Snapshot{Phase: roll.PhaseSorted, Result: 42, HasResult: true}
	if got := renderResult(s); !strings.Contains(got, "42") {
		t.Errorf("renderResult = %q, want the result", got)
	}
	if got := renderResult(roll.Snapshot{}); !strings.Contains(got, format.NoResult) {
		t.Errorf("renderResult = %q, want the placeholder", got)
	}
}
