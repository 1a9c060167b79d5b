package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agbru/d100/internal/roll"
)

// NoResult is shown in place of a result before one is available.
const NoResult = "—"

// Result returns the snapshot's result, or NoResult.
func Result(s roll.Snapshot) string {
	if !s.HasResult {
		return NoResult
	}
	return strconv.Itoa(s.Result)
}

// Status returns the status line for the snapshot's phase.
func Status(s roll.Snapshot) string {
	switch s.Phase {
	case roll.PhaseIdle:
		return "Ready to roll"
	case roll.PhaseRandomizing:
		return "Randomizing..."
	case roll.PhaseSettling:
		return "Counting dots..."
	case roll.PhaseSorted:
		if s.HasResult {
			return DotsFound(s.Result)
		}
	}
	return ""
}

// DotsFound phrases a result as a sentence.
func DotsFound(n int) string {
	if n == 1 {
		return "1 dot found"
	}
	return fmt.Sprintf("%d dots found", n)
}

// HistoryLine joins history entries newest first, e.g. "42 · 50 · 61".
// At most limit entries are shown; limit <= 0 shows all of them.
func HistoryLine(history []int, limit int) string {
	if len(history) == 0 {
		return "No rolls yet"
	}
	shown := history
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	parts := make([]string, len(shown))
	for i, v := range shown {
		parts[i] = strconv.Itoa(v)
	}
	line := strings.Join(parts, " · ")
	if len(shown) < len(history) {
		line += fmt.Sprintf(" (+%d)", len(history)-len(shown))
	}
	return line
}
