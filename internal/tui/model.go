// Package tui is the interactive terminal front end of the roll simulator,
// built on bubbletea. It renders machine snapshots and turns key presses
// into roll requests; it never mutates roll state itself.
package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/d100/internal/errors"
	"github.com/agbru/d100/internal/format"
	"github.com/agbru/d100/internal/logging"
	"github.com/agbru/d100/internal/roll"
)

// Roller is the part of the roll machine the dashboard drives.
type Roller interface {
	Roll() bool
	Snapshot() roll.Snapshot
	Subscribe() (<-chan roll.Snapshot, func())
	Close()
}

// Options configures the dashboard.
type Options struct {
	Version      string
	ShowHistory  bool
	Fullscreen   bool
	RepeatWindow time.Duration
	// HistoryLimit caps the entries listed in the history panel.
	HistoryLimit int
	Logger       logging.Logger
	// Output defaults to stdout.
	Output io.Writer
}

const defaultHistoryLimit = 12

// LayoutManager holds terminal dimensions.
type LayoutManager struct {
	width  int
	height int
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	header HeaderModel
	help   help.Model
	keymap KeyMap

	LayoutManager

	ctx       context.Context
	machine   Roller
	snapshots <-chan roll.Snapshot
	cancelSub func()
	snapshot  roll.Snapshot
	repeat    RepeatFilter
	now       func() time.Time
	logger    logging.Logger

	historyOpen  bool
	fullscreen   bool
	historyLimit int
	exitCode     int
}

// NewModel subscribes to the machine and creates the dashboard model.
func NewModel(ctx context.Context, machine Roller, opts Options) Model {
	snapshots, cancel := machine.Subscribe()
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = defaultHistoryLimit
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	snap := machine.Snapshot()
	header := NewHeaderModel(opts.Version)
	header.SetRolls(len(snap.History))

	return Model{
		header:       header,
		help:         help.New(),
		keymap:       DefaultKeyMap(),
		ctx:          ctx,
		machine:      machine,
		snapshots:    snapshots,
		cancelSub:    cancel,
		snapshot:     snap,
		repeat:       NewRepeatFilter(opts.RepeatWindow),
		now:          time.Now,
		logger:       opts.Logger,
		historyOpen:  opts.ShowHistory,
		fullscreen:   opts.Fullscreen,
		historyLimit: opts.HistoryLimit,
		exitCode:     apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshotCmd(m.snapshots),
		watchContextCmd(m.ctx),
		tickCmd(),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case SnapshotMsg:
		m.applySnapshot(msg.Snapshot)
		return m, waitForSnapshotCmd(m.snapshots)

	case SubscriptionClosedMsg:
		return m, nil

	case TickMsg:
		return m, tickCmd()

	case ContextCancelledMsg:
		m.teardown()
		m.exitCode = apperrors.ExitErrorCanceled
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.teardown()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Roll):
		if !m.repeat.Accept(m.now()) {
			return m, nil
		}
		if m.machine.Roll() {
			m.applySnapshot(m.machine.Snapshot())
		}
		return m, nil

	case key.Matches(msg, m.keymap.History):
		m.historyOpen = !m.historyOpen
		return m, nil

	case key.Matches(msg, m.keymap.Fullscreen):
		m.fullscreen = !m.fullscreen
		if m.fullscreen {
			return m, tea.EnterAltScreen
		}
		return m, tea.ExitAltScreen
	}

	return m, nil
}

// applySnapshot keeps the newest snapshot; older ones that arrive late are
// dropped.
func (m *Model) applySnapshot(s roll.Snapshot) {
	if s.Version < m.snapshot.Version {
		return
	}
	m.snapshot = s
	m.header.SetRolls(len(s.History))
}

// teardown stops the machine so no timer fires after the program exits.
func (m *Model) teardown() {
	if m.cancelSub != nil {
		m.cancelSub()
	}
	m.machine.Close()
}

// View renders the dashboard.
func (m Model) View() string {
	board := panelStyle.Render(renderGrid(m.snapshot))

	parts := []string{
		m.header.View(),
		board,
		renderResult(m.snapshot),
		renderStatus(m.snapshot),
	}
	if m.historyOpen {
		parts = append(parts, renderHistory(m.snapshot.History, m.historyLimit))
	}
	parts = append(parts, m.help.View(m.keymap))

	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	if m.fullscreen && m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

// renderResult draws the result, dimmed while a roll is in flight.
func renderResult(s roll.Snapshot) string {
	text := "Result: " + format.Result(s)
	switch s.Phase {
	case roll.PhaseRandomizing:
		return resultDimStyle.Render(text)
	case roll.PhaseSettling:
		return resultHalfStyle.Render(text)
	default:
		return resultStyle.Render(text)
	}
}

func renderStatus(s roll.Snapshot) string {
	text := format.Status(s)
	switch s.Phase {
	case roll.PhaseRandomizing, roll.PhaseSettling:
		return statusRollStyle.Render(text)
	case roll.PhaseSorted:
		return statusDoneStyle.Render(text)
	default:
		return statusIdleStyle.Render(text)
	}
}

func renderHistory(history []int, limit int) string {
	lines := []string{
		historyLabelStyle.Render("History") + "  " + historyValueStyle.Render(format.HistoryLine(history, limit)),
	}
	if spark := RenderSparkline(history, 2*limit); spark != "" {
		lines = append(lines, sparklineStyle.Render(spark))
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// ExitCode returns the code the program should exit with.
func (m Model) ExitCode() int {
	return m.exitCode
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, machine Roller, opts Options) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, machine, opts)
	defer model.teardown()

	var progOpts []tea.ProgramOption
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	if opts.Fullscreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, progOpts...)

	finalModel, err := p.Run()
	if err != nil {
		model.logger.Error("dashboard stopped", err)
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		return m.ExitCode()
	}
	return apperrors.ExitSuccess
}

// waitForSnapshotCmd blocks until the machine publishes a new snapshot.
// It is re-armed after every SnapshotMsg.
func waitForSnapshotCmd(ch <-chan roll.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return SubscriptionClosedMsg{}
		}
		return SnapshotMsg{Snapshot: s}
	}
}

// tickCmd returns a command that sends a TickMsg after one second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
