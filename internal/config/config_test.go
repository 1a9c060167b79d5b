package config

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/agbru/d100/internal/errors"
	"github.com/agbru/d100/internal/roll"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "d100.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("d100", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timings() != roll.DefaultTimings() {
		t.Errorf("Timings() = %+v, want defaults", cfg.Timings())
	}
	if cfg.Rolls != 1 {
		t.Errorf("Rolls = %d, want 1", cfg.Rolls)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{"-tick-interval", "20ms", "-ticks", "3", "-settle", "0s", "-seed", "9",
		"-plain", "-rolls", "5", "-history", "-v", "-metrics-addr", ":9100"}
	cfg, err := ParseConfig("d100", args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := roll.Timings{TickInterval: 20 * time.Millisecond, TickCount: 3}
	if cfg.Timings() != want {
		t.Errorf("Timings() = %+v, want %+v", cfg.Timings(), want)
	}
	if cfg.Seed != 9 || !cfg.Plain || cfg.Rolls != 5 || !cfg.History || !cfg.Verbose || cfg.MetricsAddr != ":9100" {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestParseConfig_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := ParseConfig("d100", []string{"-h"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("-tick-interval")) {
		t.Error("usage should list -tick-interval")
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero ticks", []string{"-ticks", "0"}},
		{"zero interval", []string{"-tick-interval", "0s"}},
		{"negative settle", []string{"-settle", "-1s"}},
		{"zero rolls", []string{"-rolls", "0"}},
		{"unknown shell", []string{"-completion", "tcsh"}},
		{"positional argument", []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("d100", tt.args, &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := apperrors.ExitCode(err); code != apperrors.ExitErrorConfig {
				t.Errorf("ExitCode = %d, want %d (err: %v)", code, apperrors.ExitErrorConfig, err)
			}
		})
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("D100_TICKS", "4")
	t.Setenv("D100_SETTLE", "300ms")
	t.Setenv("D100_HISTORY", "yes")
	t.Setenv("D100_VERBOSE", "maybe")
	t.Setenv("D100_SEED", "not-a-number")

	cfg, err := ParseConfig("d100", []string{"-ticks", "2"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Ticks != 2 {
		t.Errorf("flag must win over env: Ticks = %d, want 2", cfg.Ticks)
	}
	if cfg.Settle != 300*time.Millisecond {
		t.Errorf("Settle = %v, want 300ms", cfg.Settle)
	}
	if !cfg.History {
		t.Error("D100_HISTORY=yes should enable history")
	}
	if cfg.Verbose {
		t.Error("unrecognized bool must keep the default")
	}
	if cfg.Seed != 0 {
		t.Errorf("unparsable seed must be ignored, got %d", cfg.Seed)
	}
}

func TestParseConfig_FileLayer(t *testing.T) {
	path := writeConfigFile(t, `
tick_interval: 40ms
ticks: 6
settle: 2s
history: true
rolls: 3
`)
	t.Setenv("D100_ROLLS", "7")

	cfg, err := ParseConfig("d100", []string{"-config", path, "-ticks", "10"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TickInterval != 40*time.Millisecond || cfg.Settle != 2*time.Second || !cfg.History {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Ticks != 10 {
		t.Errorf("flag must win over file: Ticks = %d", cfg.Ticks)
	}
	if cfg.Rolls != 7 {
		t.Errorf("env must win over file: Rolls = %d", cfg.Rolls)
	}
}

func TestParseConfig_FileFromEnv(t *testing.T) {
	path := writeConfigFile(t, "placeholder: true\n")
	t.Setenv("D100_CONFIG", path)

	cfg, err := ParseConfig("d100", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Placeholder || cfg.ConfigFile != path {
		t.Errorf("D100_CONFIG not honoured: %+v", cfg)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		var configErr apperrors.ConfigError
		if !errors.As(err, &configErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadFile(writeConfigFile(t, "grid_size: 12\n"))
		if err == nil {
			t.Fatal("unknown keys must be rejected")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		fc, err := LoadFile(writeConfigFile(t, ""))
		if err != nil {
			t.Fatalf("empty file should be accepted: %v", err)
		}
		if fc.Ticks != nil {
			t.Error("empty file must not set values")
		}
	})
}

func TestFlagNames(t *testing.T) {
	names := map[string]bool{}
	for _, n := range FlagNames() {
		names[n] = true
	}
	for _, want := range []string{"tick-interval", "ticks", "settle", "plain", "metrics-addr", "completion"} {
		if !names[want] {
			t.Errorf("FlagNames() missing %q", want)
		}
	}
}
