package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/d100/internal/grid"
	"github.com/agbru/d100/internal/roll"
	"github.com/agbru/d100/internal/roll/rolltest"
)

func TestRecorder_CountsACompleteRoll(t *testing.T) {
	rec := NewRecorder()
	sched := rolltest.NewManualScheduler()
	m := roll.New(
		roll.WithScheduler(sched),
		roll.WithSource(grid.NewSource(11)),
		roll.WithObserver(rec),
	)
	defer m.Close()

	if !m.Roll() {
		t.Fatal("roll should be accepted")
	}
	if got := testutil.ToFloat64(rec.phase.WithLabelValues("randomizing")); got != 1 {
		t.Errorf("randomizing gauge = %v, want 1", got)
	}

	m.Roll()
	sched.Advance(roll.DefaultTimings().Total())

	s := m.Snapshot()
	if got := testutil.ToFloat64(rec.rollsStarted); got != 1 {
		t.Errorf("rolls_started_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rec.rollsCompleted); got != 1 {
		t.Errorf("rolls_completed_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rec.rollsRejected.WithLabelValues("randomizing")); got != 1 {
		t.Errorf("rolls_rejected_total{phase=randomizing} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rec.lastResult); got != float64(s.Result) {
		t.Errorf("last_result = %v, want %d", got, s.Result)
	}
	if got := testutil.ToFloat64(rec.phase.WithLabelValues("sorted")); got != 1 {
		t.Errorf("sorted gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rec.phase.WithLabelValues("randomizing")); got != 0 {
		t.Errorf("randomizing gauge = %v, want 0", got)
	}
}

func TestRecorder_CycleDuration(t *testing.T) {
	rec := NewRecorder()
	clock := time.Unix(0, 0)
	rec.now = func() time.Time { return clock }

	rec.OnTransition(roll.PhaseIdle, roll.PhaseRandomizing, roll.Snapshot{})
	clock = clock.Add(2 * time.Second)
	rec.OnTransition(roll.PhaseSettling, roll.PhaseSorted, roll.Snapshot{Result: 42, HasResult: true})

	if n := testutil.CollectAndCount(rec.cycleDuration); n != 1 {
		t.Fatalf("expected one histogram series, got %d", n)
	}
	expected := `
# HELP d100_roll_duration_seconds Wall time from roll request to recorded result.
# TYPE d100_roll_duration_seconds histogram
d100_roll_duration_seconds_bucket{le="0.5"} 0
d100_roll_duration_seconds_bucket{le="1"} 0
d100_roll_duration_seconds_bucket{le="1.5"} 0
d100_roll_duration_seconds_bucket{le="2"} 1
d100_roll_duration_seconds_bucket{le="3"} 1
d100_roll_duration_seconds_bucket{le="5"} 1
d100_roll_duration_seconds_bucket{le="10"} 1
d100_roll_duration_seconds_bucket{le="+Inf"} 1
d100_roll_duration_seconds_sum 2
d100_roll_duration_seconds_count 1
`
	if err := testutil.CollectAndCompare(rec.cycleDuration, strings.NewReader(expected)); err != nil {
		t.Error(err)
	}
}

func TestRecorder_Handler(t *testing.T) {
	rec := NewRecorder()
	rec.OnRejected(roll.PhaseSettling)

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rw := httptest.NewRecorder()
	rec.Handler().ServeHTTP(rw, req)

	body := rw.Body.String()
	for _, want := range []string{
		"d100_rolls_rejected_total{phase=\"settling\"} 1",
		"d100_phase{phase=\"idle\"} 1",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output should contain %q", want)
		}
	}
}
