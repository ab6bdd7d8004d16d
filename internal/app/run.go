package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/fibhost/internal/cli"
	"github.com/agbru/fibhost/internal/config"
	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
	"github.com/agbru/fibhost/internal/host"
	"github.com/agbru/fibhost/internal/loader"
	"github.com/agbru/fibhost/internal/logging"
	"github.com/agbru/fibhost/internal/orchestration"
	"github.com/agbru/fibhost/internal/telemetry"
	"github.com/agbru/fibhost/internal/tui"
)

// spec builds the loader selection from the configuration.
func (a *Application) spec() loader.Spec {
	return loader.Spec{
		Backend: loader.Backend(a.Config.Backend),
		Variant: a.Config.Variant,
		Path:    a.Config.Path,
		Label:   a.Config.Label,
	}
}

// load resolves the configured library writing to out.
func (a *Application) load(ctx context.Context, out fibonacci.Output) (fibonacci.Library, error) {
	ld := loader.New(out, loader.WithFactory(a.Factory), loader.WithLogger(a.logger))
	lib, err := ld.Load(ctx, a.spec())
	if err != nil {
		return nil, err
	}
	a.logger.Debug("library loaded",
		logging.String("backend", a.Config.Backend),
		logging.Int("version", int(lib.Version())))
	if a.metrics != nil {
		a.metrics.SetLibraryVersion(lib.Version())
	}
	return lib, nil
}

// hostOptions maps the loop configuration onto driver options.
func (a *Application) hostOptions() []host.Option {
	opts := []host.Option{
		host.WithCount(a.Config.Count),
		host.WithOffset(a.Config.Offset),
		host.WithDelay(a.Config.Delay),
		host.WithMeasure(a.Config.Measure),
		host.WithMarkLastValid(a.Config.MarkLast),
	}
	if a.Config.Banner {
		opts = append(opts, host.WithBanner(a.Config.Label))
	}
	return opts
}

// observers returns the metrics and tracing observers for a run.
// instrument opens the host.run span for one run over lib and returns the
// observers that report its calls under that span.
func (a *Application) instrument(ctx context.Context, lib fibonacci.Library) (context.Context, []host.Observer, func(error)) {
	ctx, end := telemetry.StartRun(ctx, a.tracerProvider, telemetry.RunInfo{
		Backend: a.Config.Backend,
		Variant: a.Config.Variant,
		Path:    a.Config.Path,
		Version: lib.Version(),
	})
	obs := []host.Observer{telemetry.NewObserver(ctx, a.tracerProvider)}
	if a.metrics != nil {
		obs = append(obs, a.metrics)
	}
	return ctx, obs, end
}

func (a *Application) showSpinner() bool {
	if a.Config.Quiet {
		return false
	}
	if a.interactive != nil {
		return *a.interactive
	}
	return isTerminal(a.ErrWriter)
}

// runHost runs the driver loop against the configured library.
func (a *Application) runHost(ctx context.Context, out io.Writer) int {
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, a.ErrWriter)
	}

	output := fibonacci.NewOutput(out)
	lib, err := a.load(ctx, output)
	if err != nil {
		a.logger.Error("load failed", err, logging.String("backend", a.Config.Backend))
		return apperrors.HandleError(a.classify(err), a.ErrWriter)
	}

	ctx, observers, endRun := a.instrument(ctx, lib)

	opts := a.hostOptions()
	if a.showSpinner() {
		opts = append(opts, host.WithPause(cli.SpinnerPause(a.ErrWriter)))
	}
	for _, o := range observers {
		opts = append(opts, host.WithObserver(o))
	}

	err = host.New(lib, output, opts...).Run(ctx)
	endRun(err)
	return apperrors.HandleError(a.classify(err), a.ErrWriter)
}

// runREPL starts the interactive shell over the configured library.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	output := fibonacci.NewOutput(out)
	lib, err := a.load(ctx, output)
	if err != nil {
		return apperrors.HandleError(err, a.ErrWriter)
	}

	replCfg := cli.REPLConfig{Variant: a.Config.Variant, Factory: a.Factory}
	if a.Config.Backend == config.DefaultBackend {
		replCfg.Load = func(variant string) (fibonacci.Library, error) {
			spec := a.spec()
			spec.Variant = variant
			return loader.New(output, loader.WithFactory(a.Factory), loader.WithLogger(a.logger)).Load(ctx, spec)
		}
	} else {
		replCfg.Variant = a.Config.Path
	}

	repl := cli.NewREPL(lib, replCfg)
	repl.SetInput(a.In)
	repl.SetOutput(out)
	return apperrors.HandleError(repl.Start(), a.ErrWriter)
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	title := a.Config.Variant
	if a.Config.Backend != config.DefaultBackend {
		title = a.Config.Path
	}
	return tui.Run(ctx, tui.Session{
		Title:       fmt.Sprintf("%s (%s)", title, a.Config.Backend),
		Load:        a.load,
		HostOptions: a.hostOptions(),
		Instrument:  a.instrument,
	})
}

// runCompare checks every selected builtin variant against the exact values.
func (a *Application) runCompare(ctx context.Context, out io.Writer) int {
	algs := orchestration.SelectVariants(a.Config.Variant, a.Factory)
	cfg := config.ApplyCompareLimit(a.Config, algs)

	if !cfg.Quiet {
		cli.PrintExecutionConfig(cfg, a.ErrWriter)
	}

	reporter := orchestration.ProgressReporter(cli.CLIProgressReporter{})
	progressOut := a.ErrWriter
	if !a.showSpinner() {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	results := orchestration.ExecuteComparison(ctx, algs, cfg.CompareMax, reporter, progressOut)
	opts := orchestration.PresentationOptions{MaxIndex: cfg.CompareMax, Verbose: cfg.Verbose}
	return orchestration.AnalyzeComparisonResults(results, opts, cli.CLIResultPresenter{}, out)
}
