package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	rollErr := errors.New("timer stopped")

	tests := []struct {
		name      string
		field     Field
		wantKey   string
		wantValue any
	}{
		{"String", String("phase", "settling"), "phase", "settling"},
		{"Int", Int("result", 42), "result", 42},
		{"Uint64", Uint64("version", 7), "version", uint64(7)},
		{"Float64", Float64("ratio", 0.42), "ratio", 0.42},
		{"Bool", Bool("rolling", true), "rolling", true},
		{"Err", Err(rollErr), "error", rollErr},
		{"Err nil", Err(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.wantKey)
			}
			if tt.field.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.wantValue)
			}
		})
	}
}

func TestNewLogger_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "roll")
	logger.Info("roll started", String("roll_id", "abc"))

	out := buf.String()
	for _, want := range []string{"roll", "roll started", "abc", "info"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

func TestNop_DiscardsEverything(t *testing.T) {
	// Nothing to assert beyond not panicking on every method.
	l := Nop()
	l.Info("x")
	l.Debug("x")
	l.Warn("x")
	l.Error("x", errors.New("y"))
	l.Printf("%d", 1)
	l.Println("x")
}

func TestZerologAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Debug("tick", Int("tick", 3))
	logger.Warn("slow frame")
	logger.Error("settle failed", errors.New("torn down"), String("phase", "settling"))

	out := buf.String()
	for _, want := range []string{`"level":"debug"`, `"tick":3`, `"level":"warn"`, `"level":"error"`, "torn down", "settling"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestZerologAdapter_ErrorWithNilError(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "test").Error("nothing wrong", nil)
	if !strings.Contains(buf.String(), "nothing wrong") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("rolled %d dots", 57)
	logger.Println("history", "open")

	out := buf.String()
	if !strings.Contains(out, "rolled 57 dots") {
		t.Errorf("Printf should format message, got: %s", out)
	}
	if !strings.Contains(out, "history open") {
		t.Errorf("Println should join operands, got: %s", out)
	}
}

func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string", Field{Key: "s", Value: "sorted"}, "sorted"},
		{"int", Field{Key: "n", Value: 42}, "42"},
		{"int64", Field{Key: "n", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64", Field{Key: "n", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64", Field{Key: "f", Value: 0.25}, "0.25"},
		{"bool", Field{Key: "b", Value: true}, "true"},
		{"error", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"struct", Field{Key: "data", Value: struct{ X int }{X: 1}}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("field", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output should contain %q, got: %s", tt.contains, buf.String())
			}
		})
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{"info", func(l Logger) { l.Info("ready", String("phase", "idle")) }, []string{"[INFO]", "ready", "phase=idle"}},
		{"debug", func(l Logger) { l.Debug("tick", Int("tick", 2)) }, []string{"[DEBUG]", "tick=2"}},
		{"warn", func(l Logger) { l.Warn("late") }, []string{"[WARN]", "late"}},
		{"error", func(l Logger) { l.Error("failed", errors.New("boom"), String("db", "none")) }, []string{"[ERROR]", "failed", "boom", "db=none"}},
		{"printf", func(l Logger) { l.Printf("value is %d", 123) }, []string{"value is 123"}},
		{"println", func(l Logger) { l.Println("a", "b", "c") }, []string{"a b c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got: %s", want, buf.String())
				}
			}
		})
	}
}
