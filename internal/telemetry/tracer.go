// Package telemetry records one OpenTelemetry span per roll cycle, from the
// roll request to the recorded result, with an event when settling starts.
package telemetry

import (
	"context"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/d100/internal/roll"
)

const instrumentationName = "github.com/agbru/d100/internal/roll"

// RollTracer is a roll.Observer that turns cycles into spans.
type RollTracer struct {
	tracer trace.Tracer

	mu   sync.Mutex
	span trace.Span
}

var _ roll.Observer = (*RollTracer)(nil)

// NewRollTracer creates a tracer from the given provider. A nil provider
// uses the global one, which is a no-op unless Setup installed an exporter.
func NewRollTracer(tp trace.TracerProvider) *RollTracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &RollTracer{tracer: tp.Tracer(instrumentationName)}
}

// OnTransition starts, annotates and ends the cycle span.
func (t *RollTracer) OnTransition(from, to roll.Phase, s roll.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch to {
	case roll.PhaseRandomizing:
		if t.span != nil {
			t.span.End()
		}
		_, t.span = t.tracer.Start(context.Background(), "roll",
			trace.WithAttributes(
				attribute.String("roll.id", s.RollID),
				attribute.String("roll.previous_phase", from.String()),
			))
	case roll.PhaseSettling:
		if t.span != nil {
			t.span.AddEvent("settling")
		}
	case roll.PhaseSorted:
		if t.span != nil {
			t.span.SetAttributes(
				attribute.Int("roll.result", s.Result),
				attribute.Int("roll.history_len", len(s.History)),
			)
			t.span.End()
			t.span = nil
		}
	}
}

// OnRejected records the ignored request on the open span.
func (t *RollTracer) OnRejected(current roll.Phase) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.span != nil {
		t.span.AddEvent("roll rejected", trace.WithAttributes(attribute.String("roll.phase", current.String())))
	}
}

// Close ends a span left open by a teardown in the middle of a cycle.
func (t *RollTracer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.span != nil {
		t.span.SetAttributes(attribute.Bool("roll.interrupted", true))
		t.span.End()
		t.span = nil
	}
}

// Setup installs a tracer provider that writes spans as JSON to w and
// returns it with a shutdown function that flushes pending spans.
func Setup(w io.Writer) (*sdktrace.TracerProvider, func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	return tp, tp.Shutdown, nil
}
