package roll

import (
	"time"

	apperrors "github.com/agbru/d100/internal/errors"
)

// Default animation pacing.
const (
	DefaultTickInterval = 80 * time.Millisecond
	DefaultTickCount    = 8
	DefaultSettleDelay  = 1200 * time.Millisecond
)

// Timings controls the pacing of a roll cycle. The values only shape the
// animation; the result does not depend on them.
type Timings struct {
	// TickInterval is the delay between two regenerations while randomizing.
	TickInterval time.Duration
	// TickCount is the number of regenerations before the final draw.
	TickCount int
	// SettleDelay is how long the final cells are held before the result
	// is recorded.
	SettleDelay time.Duration
}

// DefaultTimings returns the standard pacing.
func DefaultTimings() Timings {
	return Timings{
		TickInterval: DefaultTickInterval,
		TickCount:    DefaultTickCount,
		SettleDelay:  DefaultSettleDelay,
	}
}

// Total returns the wall time of one full cycle.
func (t Timings) Total() time.Duration {
	return time.Duration(t.TickCount)*t.TickInterval + t.SettleDelay
}

// Validate checks that the timings describe a cycle that terminates.
func (t Timings) Validate() error {
	if t.TickInterval <= 0 {
		return apperrors.ValidationError{Field: "tick-interval", Message: "must be positive"}
	}
	if t.TickCount < 1 {
		return apperrors.ValidationError{Field: "ticks", Message: "must be at least 1"}
	}
	if t.SettleDelay < 0 {
		return apperrors.ValidationError{Field: "settle", Message: "must not be negative"}
	}
	return nil
}
