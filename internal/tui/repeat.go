package tui

import "time"

// DefaultRepeatWindow is the longest gap between two roll-key presses that
// is still treated as terminal auto-repeat. It must exceed the delay before
// a held key starts repeating, which is up to about 660ms on common systems.
const DefaultRepeatWindow = 750 * time.Millisecond

// RepeatFilter tells fresh key presses from auto-repeat. Terminals do not
// report key releases, so a press arriving within the window of the
// previous one is taken as a held key. Every press, accepted or not,
// restarts the window.
type RepeatFilter struct {
	window time.Duration
	last   time.Time
}

// NewRepeatFilter creates a filter; a non-positive window accepts every press.
func NewRepeatFilter(window time.Duration) RepeatFilter {
	return RepeatFilter{window: window}
}

// Accept records a press at now and reports whether it is a fresh press.
func (f *RepeatFilter) Accept(now time.Time) bool {
	prev := f.last
	f.last = now
	if f.window <= 0 || prev.IsZero() {
		return true
	}
	return now.Sub(prev) >= f.window
}
