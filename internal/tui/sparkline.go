package tui

// sparklineChars maps values 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline draws results (0..100) as a row of blocks. history is
// newest first; the sparkline reads oldest to newest, left to right, and
// keeps only the most recent width entries.
func RenderSparkline(history []int, width int) string {
	if len(history) == 0 || width <= 0 {
		return ""
	}
	n := min(len(history), width)
	runes := make([]rune, n)
	for i := range n {
		v := history[n-1-i]
		v = max(0, min(v, 100))
		runes[i] = sparklineChars[v*7/100]
	}
	return string(runes)
}
