package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HeaderModel renders the top bar: title, version, roll count, session time.
type HeaderModel struct {
	startTime time.Time
	version   string
	rolls     int
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
	}
}

// SetRolls updates the number of completed rolls.
func (h *HeaderModel) SetRolls(n int) {
	h.rolls = n
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "D100"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")

	left := titleStyle.Render(titleText) + pipe +
		versionStyle.Render(fmt.Sprintf("Rolls: %d", h.rolls)) + pipe +
		elapsedStyle.Render("Session: "+time.Since(h.startTime).Truncate(time.Second).String())

	gap := max(h.width-2-lipgloss.Width(left), 0)
	row := left + strings.Repeat(" ", gap)
	if h.width <= 0 {
		return headerStyle.Render(row)
	}
	return headerStyle.Width(h.width).Render(row)
}
