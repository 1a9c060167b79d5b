package roll

// Phase is the stage of the roll lifecycle.
type Phase int

const (
	// PhaseIdle is the resting state before the first roll.
	PhaseIdle Phase = iota
	// PhaseRandomizing regenerates the cells on every tick.
	PhaseRandomizing
	// PhaseSettling holds the final cells while they reflow into sorted order.
	PhaseSettling
	// PhaseSorted shows the recorded result until the next roll.
	PhaseSorted
)

var phaseNames = [...]string{
	PhaseIdle:        "idle",
	PhaseRandomizing: "randomizing",
	PhaseSettling:    "settling",
	PhaseSorted:      "sorted",
}

// String returns the lower-case phase name.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Rolling reports whether a cycle is in flight.
func (p Phase) Rolling() bool {
	return p == PhaseRandomizing || p == PhaseSettling
}

// acceptsRoll reports whether a new cycle may start from p.
func (p Phase) acceptsRoll() bool {
	return p == PhaseIdle || p == PhaseSorted
}
