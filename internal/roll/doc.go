// Package roll implements the roll lifecycle: a state machine that moves a
// cell set through idle, randomizing, settling and sorted on scheduler
// timers, records the result and keeps the result history.
//
// # Phases
//
//	idle/sorted --Roll--> randomizing --TickCount ticks--> settling --SettleDelay--> sorted
//
// Roll is accepted only from idle or sorted; calls made while a cycle is in
// flight are ignored. At most one timer is armed at any time and Close
// disarms it, so nothing mutates the machine after teardown.
//
// # Publishing
//
// Every state change is published twice. Observers are synchronous sinks
// (metrics, tracing) invoked under the machine lock. Subscriptions are
// single-slot channels that always hold the latest Snapshot, which is what
// presentation adapters render from.
package roll
