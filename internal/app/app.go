// Package app wires configuration, logging, telemetry and the roll machine
// together and runs the selected front end.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/agbru/d100/internal/cli"
	"github.com/agbru/d100/internal/config"
	apperrors "github.com/agbru/d100/internal/errors"
	"github.com/agbru/d100/internal/grid"
	"github.com/agbru/d100/internal/logging"
	"github.com/agbru/d100/internal/metrics"
	"github.com/agbru/d100/internal/roll"
	"github.com/agbru/d100/internal/server"
	"github.com/agbru/d100/internal/sysmon"
	"github.com/agbru/d100/internal/telemetry"
	"github.com/agbru/d100/internal/tui"
	"github.com/agbru/d100/internal/ui"
)

// Application represents the d100 application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
}

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "d100"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run executes the application and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	interactive := !a.Config.Plain && isTerminal(out)

	logger, closeLog, err := a.newLogger(interactive)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer closeLog()

	if err := a.run(ctx, out, logger, interactive); err != nil {
		logger.Error("d100 stopped", err)
		if !apperrors.IsContextError(err) {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		}
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitSuccess
}

func (a *Application) run(ctx context.Context, out io.Writer, logger logging.Logger, interactive bool) error {
	recorder := metrics.NewRecorder()
	if a.Config.MetricsAddr != "" {
		recorder.Registry().MustRegister(sysmon.NewCollector())
	}
	opts := []roll.Option{
		roll.WithTimings(a.Config.Timings()),
		roll.WithSource(grid.NewSource(a.Config.Seed)),
		roll.WithLogger(logger),
		roll.WithObserver(recorder),
		roll.WithPlaceholderResult(a.Config.Placeholder),
	}

	if a.Config.TraceFile != "" {
		tracer, shutdown, err := a.setupTracing(logger)
		if err != nil {
			return err
		}
		defer shutdown()
		defer tracer.Close()
		opts = append(opts, roll.WithObserver(tracer))
	}

	machine := roll.New(opts...)
	defer machine.Close()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Info("d100 starting",
		logging.String("version", Version),
		logging.Bool("interactive", interactive),
		logging.Uint64("seed", a.Config.Seed))

	g, gctx := errgroup.WithContext(ctx)
	if a.Config.MetricsAddr != "" {
		srv := server.New(a.Config.MetricsAddr, recorder.Handler(), machine, logger)
		g.Go(func() error {
			if err := srv.Run(gctx); err != nil {
				return apperrors.RuntimeError{Component: "metrics server", Cause: err}
			}
			return nil
		})
	}

	g.Go(func() error {
		// The front end decides when the session ends.
		defer cancel()
		if interactive {
			return a.runTUI(gctx, machine, out, logger)
		}
		return cli.NewRunner(machine, out, logger).Run(gctx, a.Config.Rolls)
	})

	return g.Wait()
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context, machine *roll.Machine, out io.Writer, logger logging.Logger) error {
	code := tui.Run(ctx, machine, tui.Options{
		Version:      Version,
		ShowHistory:  a.Config.History,
		Fullscreen:   a.Config.Fullscreen,
		RepeatWindow: tui.DefaultRepeatWindow,
		Logger:       logger,
		Output:       out,
	})
	switch code {
	case apperrors.ExitSuccess:
		return nil
	case apperrors.ExitErrorCanceled:
		return context.Canceled
	default:
		return apperrors.RuntimeError{Component: "dashboard", Cause: errors.New("terminal program failed")}
	}
}

// setupTracing installs the span exporter and returns the roll observer
// with a function that flushes and closes the trace file.
func (a *Application) setupTracing(logger logging.Logger) (*telemetry.RollTracer, func(), error) {
	f, err := os.OpenFile(a.Config.TraceFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, apperrors.WrapError(err, "opening trace file")
	}
	tp, shutdown, err := telemetry.Setup(f)
	if err != nil {
		f.Close()
		return nil, nil, apperrors.RuntimeError{Component: "trace exporter", Cause: err}
	}
	return telemetry.NewRollTracer(tp), func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("trace flush failed", logging.Err(err))
		}
		f.Close()
	}, nil
}

// newLogger picks the log sink: the log file when one is configured, nothing
// while the dashboard owns the terminal, and stderr otherwise.
func (a *Application) newLogger(interactive bool) (logging.Logger, func(), error) {
	level := zerolog.InfoLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if a.Config.LogFile != "" {
		f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, apperrors.WrapError(err, "opening log file")
		}
		return logging.NewLogger(f, "d100"), func() { f.Close() }, nil
	}
	if interactive {
		return logging.Nop(), func() {}, nil
	}

	console := zerolog.ConsoleWriter{Out: a.ErrWriter, NoColor: a.Config.NoColor}
	zl := zerolog.New(console).Level(level).With().Timestamp().Logger()
	return logging.NewZerologAdapter(zl), func() {}, nil
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (-h was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
