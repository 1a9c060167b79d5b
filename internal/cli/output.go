package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/d100/internal/format"
	"github.com/agbru/d100/internal/grid"
	"github.com/agbru/d100/internal/roll"
	"github.com/agbru/d100/internal/ui"
)

// DisplayRoll prints a settled roll: its sorted grid and the result line.
func DisplayRoll(out io.Writer, n, total int, s roll.Snapshot, elapsed time.Duration) {
	fmt.Fprintln(out, grid.Arrange(s.Cells).String())
	fmt.Fprintf(out, "%sRoll %d/%d:%s %s%s%s%s %s(%s)%s\n",
		ui.ColorBold(), n, total, ui.ColorReset(),
		ui.ColorPrimary(), ui.ColorBold(), format.Status(s), ui.ColorReset(),
		ui.ColorSecondary(), format.FormatExecutionDuration(elapsed), ui.ColorReset())
}

// DisplayHistory prints every result of the session, newest first.
func DisplayHistory(out io.Writer, history []int) {
	fmt.Fprintf(out, "%sHistory:%s %s\n", ui.ColorBold(), ui.ColorReset(), format.HistoryLine(history, 0))
}

// FormatSuffix returns the spinner text for a snapshot.
func FormatSuffix(n, total int, s roll.Snapshot) string {
	return fmt.Sprintf(" Roll %d/%d: %s", n, total, format.Status(s))
}
