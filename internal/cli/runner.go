package cli

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/d100/internal/logging"
	"github.com/agbru/d100/internal/roll"
)

var (
	// ErrRollRejected is returned when the machine refuses to start a roll.
	ErrRollRejected = errors.New("roll rejected: machine busy or closed")
	// ErrMachineClosed is returned when the machine shuts down mid-roll.
	ErrMachineClosed = errors.New("roll machine closed")
)

// Roller is the part of the roll machine the plain runner drives.
type Roller interface {
	Roll() bool
	Snapshot() roll.Snapshot
	Subscribe() (<-chan roll.Snapshot, func())
}

// Runner performs rolls one after another and prints each outcome.
type Runner struct {
	machine Roller
	out     io.Writer
	logger  logging.Logger
}

// NewRunner creates a runner writing to out.
func NewRunner(machine Roller, out io.Writer, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Runner{machine: machine, out: out, logger: logger}
}

// Run performs rolls cycles, waiting for each to settle before starting the
// next, then prints the history. It stops early when ctx is canceled.
func (r *Runner) Run(ctx context.Context, rolls int) error {
	snapshots, cancel := r.machine.Subscribe()
	defer cancel()

	for n := 1; n <= rolls; n++ {
		s, err := r.rollOnce(ctx, snapshots, n, rolls)
		if err != nil {
			return err
		}
		r.logger.Debug("plain roll done",
			logging.Int("roll", n),
			logging.Int("result", s.Result))
	}
	DisplayHistory(r.out, r.machine.Snapshot().History)
	return nil
}

func (r *Runner) rollOnce(ctx context.Context, snapshots <-chan roll.Snapshot, n, total int) (roll.Snapshot, error) {
	before := r.machine.Snapshot().Version
	start := time.Now()

	sp := newSpinner(spinner.WithWriter(r.out))
	sp.Start()

	s, err := r.await(ctx, snapshots, before, func(s roll.Snapshot) {
		sp.UpdateSuffix(FormatSuffix(n, total, s))
	})
	sp.Stop()
	if err != nil {
		return roll.Snapshot{}, err
	}
	DisplayRoll(r.out, n, total, s, time.Since(start))
	return s, nil
}

// await starts a roll and blocks until it settles, reporting each
// intermediate snapshot to progress.
func (r *Runner) await(ctx context.Context, snapshots <-chan roll.Snapshot, before uint64, progress func(roll.Snapshot)) (roll.Snapshot, error) {
	if !r.machine.Roll() {
		return roll.Snapshot{}, ErrRollRejected
	}
	for {
		select {
		case <-ctx.Done():
			return roll.Snapshot{}, ctx.Err()
		case s, ok := <-snapshots:
			if !ok {
				return roll.Snapshot{}, ErrMachineClosed
			}
			if s.Version <= before {
				continue
			}
			progress(s)
			if s.Phase == roll.PhaseSorted {
				return s, nil
			}
		}
	}
}
