package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/d100/internal/grid"
	"github.com/agbru/d100/internal/roll"
)

func firstActive(n int) grid.Cells {
	var c grid.Cells
	for i := range n {
		c[i] = true
	}
	return c
}

func TestDisplayCells(t *testing.T) {
	cells := firstActive(3)

	t.Run("randomizing keeps raw order", func(t *testing.T) {
		got := displayCells(roll.Snapshot{Cells: cells, Phase: roll.PhaseRandomizing})
		if got != cells {
			t.Error("randomizing cells should be drawn unsorted")
		}
	})

	for _, phase := range []roll.Phase{roll.PhaseIdle, roll.PhaseSettling, roll.PhaseSorted} {
		t.Run(phase.String()+" is sorted", func(t *testing.T) {
			got := displayCells(roll.Snapshot{Cells: cells, Phase: phase})
			for i := range grid.Size {
				want := i >= grid.Size-3
				if got[i] != want {
					t.Fatalf("slot %d = %v, want %v", i, got[i], want)
				}
			}
			if grid.Count(got) != 3 {
				t.Errorf("sorting must not change the count, got %d", grid.Count(got))
			}
		})
	}
}

func TestRenderGrid_Shape(t *testing.T) {
	out := renderGrid(roll.Snapshot{Cells: firstActive(42), Phase: roll.PhaseSorted})
	lines := strings.Split(out, "\n")

	if len(lines) != grid.Rows+1 {
		t.Fatalf("expected %d lines (rows plus guide), got %d", grid.Rows+1, len(lines))
	}
	if got := strings.Count(out, dotGlyph); got != 42 {
		t.Errorf("dot glyphs = %d, want 42", got)
	}
	if got := strings.Count(out, emptyGlyph); got != 58 {
		t.Errorf("empty glyphs = %d, want 58", got)
	}
	if !strings.Contains(lines[guideAfter+1], "┼") {
		t.Errorf("guide row missing: %q", lines[guideAfter+1])
	}

	width := lipgloss.Width(lines[0])
	for i, l := range lines {
		if lipgloss.Width(l) != width {
			t.Errorf("line %d width = %d, want %d", i, lipgloss.Width(l), width)
		}
	}
}
