// Package config parses and validates the roller's configuration.
//
// Resolution order (highest priority first):
//  1. Command-line flags
//  2. Environment variables (D100_*)
//  3. YAML config file (-config)
//  4. Defaults
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/d100/internal/errors"
	"github.com/agbru/d100/internal/roll"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "D100_"

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// TickInterval is the delay between regenerations while randomizing.
	TickInterval time.Duration
	// Ticks is the number of regenerations before the final draw.
	Ticks int
	// Settle is how long the final cells are held before counting.
	Settle time.Duration
	// Seed makes rolls reproducible; zero draws a random seed.
	Seed uint64
	// Placeholder shows the initial grid's count before the first roll.
	Placeholder bool

	// Plain forces the non-interactive runner.
	Plain bool
	// Rolls is the number of rolls made by the plain runner.
	Rolls int
	// NoColor disables colored output.
	NoColor bool
	// Fullscreen starts the dashboard on the alternate screen.
	Fullscreen bool
	// History starts the dashboard with the history panel open.
	History bool

	// LogFile receives logs; the dashboard discards logs when empty.
	LogFile string
	// Verbose enables debug logging.
	Verbose bool
	// MetricsAddr serves /metrics and /healthz when set.
	MetricsAddr string
	// TraceFile receives one OpenTelemetry span per roll when set.
	TraceFile string
	// ConfigFile is an optional YAML file with defaults.
	ConfigFile string
	// Completion prints a shell completion script and exits.
	Completion string
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	t := roll.DefaultTimings()
	return AppConfig{
		TickInterval: t.TickInterval,
		Ticks:        t.TickCount,
		Settle:       t.SettleDelay,
		Rolls:        1,
	}
}

// Timings returns the roll pacing described by the configuration.
func (c AppConfig) Timings() roll.Timings {
	return roll.Timings{
		TickInterval: c.TickInterval,
		TickCount:    c.Ticks,
		SettleDelay:  c.Settle,
	}
}

// Validate checks the configuration for values the roller cannot use.
func (c AppConfig) Validate() error {
	if err := c.Timings().Validate(); err != nil {
		return apperrors.WrapError(err, "invalid timings")
	}
	if c.Rolls < 1 {
		return apperrors.NewConfigError("-rolls must be at least 1, got %d", c.Rolls)
	}
	switch c.Completion {
	case "", "bash", "zsh", "fish":
	default:
		return apperrors.NewConfigError("unsupported shell %q for -completion (bash, zsh, fish)", c.Completion)
	}
	return nil
}

// ParseConfig parses command-line arguments, then layers the config file and
// environment overrides underneath any flag set explicitly.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := Default()
	fs := newFlagSet(programName, &cfg)
	fs.SetOutput(errWriter)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	if !isFlagSet(fs, "config") {
		cfg.ConfigFile = getEnvString("CONFIG", cfg.ConfigFile)
	}
	if cfg.ConfigFile != "" {
		file, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		file.apply(&cfg, fs)
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

func newFlagSet(programName string, cfg *AppConfig) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)

	fs.DurationVar(&cfg.TickInterval, "tick-interval", cfg.TickInterval, "Delay between regenerations while randomizing.")
	fs.IntVar(&cfg.Ticks, "ticks", cfg.Ticks, "Number of regenerations before the final draw.")
	fs.DurationVar(&cfg.Settle, "settle", cfg.Settle, "How long the final grid is held before the dots are counted.")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 picks one at random).")
	fs.BoolVar(&cfg.Placeholder, "placeholder", cfg.Placeholder, "Show the starting grid's count before the first roll.")

	fs.BoolVar(&cfg.Plain, "plain", cfg.Plain, "Roll without the interactive dashboard.")
	fs.IntVar(&cfg.Rolls, "rolls", cfg.Rolls, "Number of rolls in plain mode.")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output.")
	fs.BoolVar(&cfg.Fullscreen, "fullscreen", cfg.Fullscreen, "Start the dashboard fullscreen.")
	fs.BoolVar(&cfg.History, "history", cfg.History, "Start with the history panel open.")

	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file.")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Enable debug logging.")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable debug logging.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address (e.g. :9100).")
	fs.StringVar(&cfg.TraceFile, "trace-file", cfg.TraceFile, "Write one trace span per roll to this file.")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML file with default settings.")
	fs.StringVar(&cfg.Completion, "completion", cfg.Completion, "Print a shell completion script (bash, zsh, fish).")

	return fs
}

// FlagNames lists every flag accepted by the command line, for shell
// completion.
func FlagNames() []string {
	cfg := Default()
	fs := newFlagSet("d100", &cfg)
	var names []string
	fs.VisitAll(func(f *flag.Flag) {
		names = append(names, f.Name)
	})
	return names
}
