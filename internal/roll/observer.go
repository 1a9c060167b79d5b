package roll

// Observer receives every state change synchronously, under the machine
// lock. Implementations must be quick and must not call back into the
// Machine.
type Observer interface {
	// OnTransition is called after the phase changed from one value to
	// another. Ticks that only regenerate cells are not transitions.
	OnTransition(from, to Phase, s Snapshot)
	// OnRejected is called when Roll is refused because a cycle is in flight
	// or the machine is closed.
	OnRejected(current Phase)
}

// ObserverFuncs adapts plain functions to an Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Transition func(from, to Phase, s Snapshot)
	Rejected   func(current Phase)
}

// OnTransition calls Transition if set.
func (o ObserverFuncs) OnTransition(from, to Phase, s Snapshot) {
	if o.Transition != nil {
		o.Transition(from, to, s)
	}
}

// OnRejected calls Rejected if set.
func (o ObserverFuncs) OnRejected(current Phase) {
	if o.Rejected != nil {
		o.Rejected(current)
	}
}
