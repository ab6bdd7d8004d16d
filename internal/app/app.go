// Package app wires configuration, the loader, the host driver and the
// optional surfaces (compare, dashboard, REPL, metrics) into the fibhost
// command.
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
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/fibhost/internal/cli"
	"github.com/agbru/fibhost/internal/config"
	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
	"github.com/agbru/fibhost/internal/logging"
	"github.com/agbru/fibhost/internal/metrics"
	"github.com/agbru/fibhost/internal/server"
	"github.com/agbru/fibhost/internal/ui"
)

// Application represents the fibhost application instance.
type Application struct {
	Config    config.AppConfig
	Factory   *fibonacci.Factory
	ErrWriter io.Writer
	In        io.Reader

	logger         logging.Logger
	metrics        *metrics.Metrics
	tracerProvider trace.TracerProvider
	interactive    *bool
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom variant registry for the application.
func WithFactory(f *fibonacci.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the REPL input; defaults to os.Stdin.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithTracerProvider sets the provider for call spans; defaults to the
// global OpenTelemetry provider.
func WithTracerProvider(tp trace.TracerProvider) AppOption {
	return func(a *Application) { a.tracerProvider = tp }
}

// WithInteractive overrides terminal detection on the error stream, which
// decides whether the pause spinner is shown.
func WithInteractive(on bool) AppOption {
	return func(a *Application) { a.interactive = &on }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.GlobalFactory()
	}

	programName := "fibhost"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code. Host and library output go to out; diagnostics go to
// ErrWriter.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor)
	a.logger = newLogger(a.ErrWriter, a.Config.LogLevel)

	if a.Config.List {
		cli.PrintVariantList(out, a.Factory.GetAll())
		return apperrors.ExitSuccess
	}

	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	if a.Config.MetricsAddr != "" {
		stop, err := a.startMetricsServer(ctx)
		if err != nil {
			return apperrors.HandleError(apperrors.WrapError(err, "metrics server"), a.ErrWriter)
		}
		defer stop()
	}

	switch {
	case a.Config.Compare:
		return a.runCompare(ctx, out)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.REPL:
		return a.runREPL(ctx, out)
	}
	return a.runHost(ctx, out)
}

// lifecycle applies the optional timeout and cancels on SIGINT/SIGTERM.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	cancelTimeout := context.CancelFunc(func() {})
	if a.Config.Timeout > 0 {
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// startMetricsServer creates the collectors and serves them until ctx is
// done or the returned stop function is called.
func (a *Application) startMetricsServer(ctx context.Context) (func(), error) {
	a.metrics = metrics.NewMetrics()
	srv := server.New(a.Config.MetricsAddr, a.metrics, a.logger)
	if err := srv.Start(ctx); err != nil {
		return nil, err
	}
	return func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			a.logger.Error("metrics server shutdown", err)
		}
	}, nil
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// classify turns a deadline hit into a TimeoutError naming the limit.
func (a *Application) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) && a.Config.Timeout > 0 {
		return apperrors.TimeoutError{Operation: "fibhost", Limit: a.Config.Timeout}
	}
	return err
}

func newLogger(w io.Writer, level string) logging.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return logging.NewConsoleLogger(w, "fibhost", lvl)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && cli.IsInteractive(f)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
