package tui

import (
	"time"

	"github.com/agbru/d100/internal/roll"
)

// SnapshotMsg carries a machine snapshot into the update loop.
type SnapshotMsg struct {
	Snapshot roll.Snapshot
}

// SubscriptionClosedMsg is sent once the machine closed the subscription.
type SubscriptionClosedMsg struct{}

// TickMsg refreshes the elapsed time in the header.
type TickMsg time.Time

// ContextCancelledMsg is sent when the parent context is canceled.
type ContextCancelledMsg struct {
	Err error
}
