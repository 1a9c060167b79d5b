package roll

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/d100/internal/grid"
	"github.com/agbru/d100/internal/logging"
)

// state is the single record owned by the Machine.
type state struct {
	cells     grid.Cells
	phase     Phase
	result    int
	hasResult bool
	history   []int
	rollID    string
	version   uint64
}

// Machine drives roll cycles. All methods are safe for concurrent use.
type Machine struct {
	mu sync.Mutex
	st state

	timings   Timings
	scheduler Scheduler
	source    grid.Source
	logger    logging.Logger
	newID     func() string
	observers []Observer

	placeholder bool

	// timer is the only armed callback, nil when none is pending.
	timer Timer
	// ticks counts regenerations in the current randomizing phase.
	ticks int
	// cycle invalidates callbacks from an earlier cycle or from before Close.
	cycle  uint64
	closed bool

	subs map[chan Snapshot]struct{}
}

// Option configures a Machine during construction.
type Option func(*Machine)

// WithScheduler sets the scheduler that arms phase timers.
func WithScheduler(s Scheduler) Option {
	return func(m *Machine) { m.scheduler = s }
}

// WithSource sets the random source cells are drawn from.
func WithSource(src grid.Source) Option {
	return func(m *Machine) { m.source = src }
}

// WithTimings sets the animation pacing.
func WithTimings(t Timings) Option {
	return func(m *Machine) { m.timings = t }
}

// WithLogger sets the logger for transitions and ignored rolls.
func WithLogger(l logging.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithObserver registers a synchronous observer.
func WithObserver(o Observer) Option {
	return func(m *Machine) { m.observers = append(m.observers, o) }
}

// WithIDGenerator overrides how roll IDs are minted.
func WithIDGenerator(f func() string) Option {
	return func(m *Machine) { m.newID = f }
}

// WithPlaceholderResult seeds the result from the initial cells so a number
// is on screen before the first roll. The placeholder is not added to the
// history.
func WithPlaceholderResult(enabled bool) Option {
	return func(m *Machine) { m.placeholder = enabled }
}

// New creates a machine in the idle phase with a freshly drawn cell set.
// Timings are not validated here; callers validate configuration first.
func New(opts ...Option) *Machine {
	m := &Machine{
		timings:   DefaultTimings(),
		scheduler: SystemScheduler(),
		logger:    logging.Nop(),
		newID:     uuid.NewString,
		subs:      make(map[chan Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.source == nil {
		m.source = grid.NewSource(0)
	}

	m.st.cells = grid.Generate(m.source)
	m.st.phase = PhaseIdle
	if m.placeholder {
		m.st.result = grid.Count(m.st.cells)
		m.st.hasResult = true
	}
	return m
}

// Timings returns the pacing the machine was built with.
func (m *Machine) Timings() Timings {
	return m.timings
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Roll starts a new cycle. It reports false, and changes nothing, when a
// cycle is already in flight or the machine is closed.
func (m *Machine) Roll() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || !m.st.phase.acceptsRoll() {
		m.logger.Debug("roll ignored",
			logging.String("phase", m.st.phase.String()),
			logging.Bool("closed", m.closed))
		for _, o := range m.observers {
			o.OnRejected(m.st.phase)
		}
		return false
	}

	m.cycle++
	m.ticks = 0
	m.st.rollID = m.newID()
	m.transitionLocked(PhaseRandomizing)
	m.arm(m.timings.TickInterval, m.tick)
	return true
}

// Close tears the machine down: the pending timer is stopped, any callback
// already in flight is discarded, subscriptions are closed and later rolls
// are ignored. Close is idempotent.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	m.cycle++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	for ch := range m.subs {
		closeSub(ch)
		delete(m.subs, ch)
	}
	m.logger.Debug("roll machine closed", logging.String("phase", m.st.phase.String()))
}

// Subscribe returns a channel that always holds the latest snapshot,
// starting with the current one, and a function that cancels the
// subscription. Intermediate snapshots may be skipped when the reader is
// slow. The channel is closed on Close or cancel, and an unread snapshot is
// dropped first.
func (m *Machine) Subscribe() (<-chan Snapshot, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if m.closed {
		close(ch)
		return ch, func() {}
	}
	ch <- m.snapshotLocked()
	m.subs[ch] = struct{}{}

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subs[ch]; ok {
			delete(m.subs, ch)
			closeSub(ch)
		}
	}
	return ch, cancel
}

// arm schedules f for the current cycle. The callback is dropped if the
// cycle has moved on or the machine was closed by the time it runs.
func (m *Machine) arm(d time.Duration, f func()) {
	token := m.cycle
	m.timer = m.scheduler.AfterFunc(d, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed || token != m.cycle {
			return
		}
		m.timer = nil
		f()
	})
}

// tick regenerates the cells. After the last tick the final cells are drawn
// and the machine moves to settling. Runs with m.mu held.
func (m *Machine) tick() {
	m.ticks++
	m.st.cells = grid.Generate(m.source)

	if m.ticks < m.timings.TickCount {
		m.publishLocked()
		m.arm(m.timings.TickInterval, m.tick)
		return
	}

	m.st.cells = grid.Generate(m.source)
	m.transitionLocked(PhaseSettling)
	m.arm(m.timings.SettleDelay, m.settle)
}

// settle records the result of the frozen cells. Runs with m.mu held.
func (m *Machine) settle() {
	result := grid.Count(m.st.cells)
	m.st.result = result
	m.st.hasResult = true

	history := make([]int, 0, len(m.st.history)+1)
	history = append(history, result)
	m.st.history = append(history, m.st.history...)

	m.transitionLocked(PhaseSorted)
	m.logger.Info("roll settled",
		logging.String("roll_id", m.st.rollID),
		logging.Int("result", result),
		logging.Int("history_len", len(m.st.history)))
}

func (m *Machine) transitionLocked(to Phase) {
	from := m.st.phase
	m.st.phase = to
	s := m.publishLocked()
	m.logger.Debug("phase transition",
		logging.String("roll_id", m.st.rollID),
		logging.String("from", from.String()),
		logging.String("to", to.String()))
	for _, o := range m.observers {
		o.OnTransition(from, to, s)
	}
}

// publishLocked bumps the version and hands the new snapshot to every
// subscriber, replacing whatever they have not read yet.
func (m *Machine) publishLocked() Snapshot {
	m.st.version++
	s := m.snapshotLocked()
	for ch := range m.subs {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
	return s
}

// closeSub discards an unread snapshot so a reader sees the close at once
// instead of state from before teardown.
func closeSub(ch chan Snapshot) {
	select {
	case <-ch:
	default:
	}
	close(ch)
}

func (m *Machine) snapshotLocked() Snapshot {
	var history []int
	if len(m.st.history) > 0 {
		history = make([]int, len(m.st.history))
		copy(history, m.st.history)
	}
	return Snapshot{
		Cells:     m.st.cells,
		Phase:     m.st.phase,
		Result:    m.st.result,
		HasResult: m.st.hasResult,
		History:   history,
		RollID:    m.st.rollID,
		Version:   m.st.version,
	}
}
