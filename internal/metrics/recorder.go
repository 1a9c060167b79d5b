// Package metrics exposes roll activity as Prometheus metrics. The Recorder
// is a roll.Observer, so every transition is counted as it happens.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/d100/internal/grid"
	"github.com/agbru/d100/internal/roll"
)

const namespace = "d100"

// Recorder collects roll metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	rollsStarted   prometheus.Counter
	rollsCompleted prometheus.Counter
	rollsRejected  *prometheus.CounterVec
	result         prometheus.Histogram
	lastResult     prometheus.Gauge
	phase          *prometheus.GaugeVec
	cycleDuration  prometheus.Histogram

	mu      sync.Mutex
	started time.Time
	now     func() time.Time
}

var _ roll.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with the Go runtime and process collectors
// registered alongside the roll metrics.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		now:      time.Now,
		rollsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rolls_started_total",
			Help:      "Number of accepted roll requests.",
		}),
		rollsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rolls_completed_total",
			Help:      "Number of rolls that reached the sorted phase.",
		}),
		rollsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rolls_rejected_total",
			Help:      "Number of roll requests ignored because a roll was in flight.",
		}, []string{"phase"}),
		result: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "result",
			Help:      "Distribution of roll results (active cells).",
			Buckets:   prometheus.LinearBuckets(10, 10, grid.Size/10),
		}),
		lastResult: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_result",
			Help:      "Result of the most recent roll.",
		}),
		phase: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase",
			Help:      "1 for the current phase of the roll machine, 0 otherwise.",
		}, []string{"phase"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "roll_duration_seconds",
			Help:      "Wall time from roll request to recorded result.",
			Buckets:   []float64{0.5, 1, 1.5, 2, 3, 5, 10},
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.rollsStarted, r.rollsCompleted, r.rollsRejected,
		r.result, r.lastResult, r.phase, r.cycleDuration,
	)
	r.setPhase(roll.PhaseIdle)
	return r
}

// OnTransition updates the phase gauge and, on completion, the result
// metrics.
func (r *Recorder) OnTransition(_, to roll.Phase, s roll.Snapshot) {
	r.setPhase(to)

	switch to {
	case roll.PhaseRandomizing:
		r.rollsStarted.Inc()
		r.mu.Lock()
		r.started = r.now()
		r.mu.Unlock()
	case roll.PhaseSorted:
		r.rollsCompleted.Inc()
		r.result.Observe(float64(s.Result))
		r.lastResult.Set(float64(s.Result))
		r.mu.Lock()
		if !r.started.IsZero() {
			r.cycleDuration.Observe(r.now().Sub(r.started).Seconds())
			r.started = time.Time{}
		}
		r.mu.Unlock()
	}
}

// OnRejected counts an ignored roll request.
func (r *Recorder) OnRejected(current roll.Phase) {
	r.rollsRejected.WithLabelValues(current.String()).Inc()
}

// Registry returns the registry the metrics live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) setPhase(current roll.Phase) {
	for _, p := range []roll.Phase{roll.PhaseIdle, roll.PhaseRandomizing, roll.PhaseSettling, roll.PhaseSorted} {
		v := 0.0
		if p == current {
			v = 1
		}
		r.phase.WithLabelValues(p.String()).Set(v)
	}
}
