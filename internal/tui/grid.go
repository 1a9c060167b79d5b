package tui

import (
	"strings"

	"github.com/agbru/d100/internal/grid"
	"github.com/agbru/d100/internal/roll"
)

const (
	dotGlyph   = "●"
	emptyGlyph = "·"
	// guideAfter is the last column (and row) before the crosshair gap.
	guideAfter = grid.Columns/2 - 1
)

// displayCells returns the cells in the order they are drawn: raw while
// randomizing, sorted in every other phase.
func displayCells(s roll.Snapshot) grid.Cells {
	if s.Phase == roll.PhaseRandomizing {
		return s.Cells
	}
	return grid.Arrange(s.Cells)
}

// renderGrid draws the 10×10 grid with a crosshair gap through its centre.
func renderGrid(s roll.Snapshot) string {
	cells := displayCells(s)

	var b strings.Builder
	for row := range grid.Rows {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := range grid.Columns {
			if col > 0 {
				b.WriteByte(' ')
			}
			if cells[row*grid.Columns+col] {
				b.WriteString(dotStyle.Render(dotGlyph))
			} else {
				b.WriteString(emptyStyle.Render(emptyGlyph))
			}
			if col == guideAfter {
				b.WriteString(guideStyle.Render(" │"))
			}
		}
		if row == guideAfter {
			b.WriteByte('\n')
			b.WriteString(guideStyle.Render(guideRow()))
		}
	}
	return b.String()
}

// guideRow is the horizontal bar of the crosshair, aligned with the
// vertical one.
func guideRow() string {
	left := strings.Repeat("─", 2*(guideAfter+1))
	right := strings.Repeat("─", 2*(grid.Columns-guideAfter-1))
	return left + "┼" + right
}
