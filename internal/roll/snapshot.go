package roll

import "github.com/agbru/d100/internal/grid"

// Snapshot is an immutable copy of the machine state. Adapters render from
// snapshots and never touch the machine state directly.
type Snapshot struct {
	Cells grid.Cells
	Phase Phase
	// Result is the count of active cells of the last settled roll. It is
	// only meaningful when HasResult is set.
	Result    int
	HasResult bool
	// History holds past results, newest first.
	History []int
	// RollID identifies the in-flight or most recent cycle; empty before
	// the first roll.
	RollID string
	// Version increases by one on every published change.
	Version uint64
}

// Rolling reports whether a cycle is in flight.
func (s Snapshot) Rolling() bool {
	return s.Phase.Rolling()
}
