package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/d100/internal/ui"
)

// Style variables for the dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle        lipgloss.Style
	headerStyle       lipgloss.Style
	titleStyle        lipgloss.Style
	versionStyle      lipgloss.Style
	elapsedStyle      lipgloss.Style
	dotStyle          lipgloss.Style
	emptyStyle        lipgloss.Style
	guideStyle        lipgloss.Style
	resultStyle       lipgloss.Style
	resultDimStyle    lipgloss.Style
	resultHalfStyle   lipgloss.Style
	statusIdleStyle   lipgloss.Style
	statusRollStyle   lipgloss.Style
	statusDoneStyle   lipgloss.Style
	historyLabelStyle lipgloss.Style
	historyValueStyle lipgloss.Style
	sparklineStyle    lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	dotStyle = lipgloss.NewStyle().
		Foreground(t.Dot)

	emptyStyle = lipgloss.NewStyle().
		Foreground(t.Empty)

	guideStyle = lipgloss.NewStyle().
		Foreground(t.Guide)

	resultStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	resultDimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	resultHalfStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Faint(true)

	statusIdleStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusRollStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	historyLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	historyValueStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	sparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)
}
