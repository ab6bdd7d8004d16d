// Package config handles command-line and environment configuration for the
// fibhost driver.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "FIBHOST_"

// Defaults for the driver loop.
const (
	DefaultVariant  = "iterative"
	DefaultBackend  = "builtin"
	DefaultCount    = 3
	DefaultOffset   = 21
	DefaultDelay    = 10 * time.Second
	DefaultLogLevel = "warn"
)

var (
	backends  = []string{"builtin", "plugin", "script"}
	logLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Variant is the builtin registry name, or "all" in compare mode.
	Variant string
	// Backend selects how the library is resolved: builtin, plugin or script.
	Backend string
	// Path is the plugin or script location for late-bound backends.
	Path string
	// Label is the language tag printed by builtin variants.
	Label string

	Count  int
	Offset int64
	Delay  time.Duration
	// Timeout bounds the whole run; zero means no limit.
	Timeout time.Duration

	Banner   bool
	Measure  bool
	MarkLast bool

	// Compare runs every selected variant over indices 0..CompareMax.
	Compare    bool
	CompareMax int64
	// Verbose lists every compared value of the fastest variant.
	Verbose bool

	TUI  bool
	REPL bool
	List bool
	// Completion names a shell whose completion script is printed.
	Completion string

	MetricsAddr string
	LogLevel    string
	NoColor     bool
	Quiet       bool
	ShowVersion bool
}

// Validate checks the semantic coherence of the configuration. availableVariants
// lists the registry names accepted for the builtin backend.
func (c AppConfig) Validate(availableVariants []string) error {
	if c.Count < 0 {
		return apperrors.NewValidationError("count", "must be non-negative, got %d", c.Count)
	}
	if c.Offset < 0 {
		return apperrors.NewValidationError("offset", "must be non-negative, got %d", c.Offset)
	}
	if c.Delay < 0 {
		return apperrors.NewValidationError("delay", "must be non-negative, got %s", c.Delay)
	}
	if c.Timeout < 0 {
		return apperrors.NewValidationError("timeout", "must be non-negative, got %s", c.Timeout)
	}
	if !slices.Contains(backends, c.Backend) {
		return apperrors.NewConfigError("unknown backend %q (available: %s)", c.Backend, strings.Join(backends, ", "))
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return apperrors.NewConfigError("unknown log level %q", c.LogLevel)
	}
	if c.Label == "" {
		return apperrors.NewConfigError("label must not be empty")
	}

	switch {
	case c.Backend != DefaultBackend:
		if c.Path == "" {
			return apperrors.NewConfigError("backend %q requires -path", c.Backend)
		}
		if c.Compare {
			return apperrors.NewConfigError("-compare only supports the builtin backend")
		}
	case c.Compare && strings.EqualFold(c.Variant, "all"):
	default:
		if !slices.Contains(availableVariants, strings.ToLower(c.Variant)) {
			return apperrors.NewConfigError("unknown variant %q (available: %s)",
				c.Variant, strings.Join(availableVariants, ", "))
		}
	}

	if c.CompareMax < 0 || c.CompareMax > fibonacci.MaxExactIndex {
		return apperrors.NewValidationError("compare-max", "must be in [0, %d], got %d", fibonacci.MaxExactIndex, c.CompareMax)
	}
	modes := 0
	for _, on := range []bool{c.TUI, c.Compare, c.REPL} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("-tui, -compare and -repl are mutually exclusive")
	}
	return nil
}

// ParseConfig parses args into an AppConfig. Flags take precedence over
// FIBHOST_ environment variables, which take precedence over defaults.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableVariants []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.Variant, "variant", DefaultVariant,
		fmt.Sprintf("Library variant (%s), or 'all' with -compare.", strings.Join(availableVariants, ", ")))
	fs.StringVar(&config.Backend, "backend", DefaultBackend, "Library backend: builtin, plugin or script.")
	fs.StringVar(&config.Path, "path", "", "Plugin (.so) or Go source file for the plugin and script backends.")
	fs.StringVar(&config.Label, "label", fibonacci.DefaultLabel, "Language tag printed by builtin variants.")
	fs.IntVar(&config.Count, "count", DefaultCount, "Number of loop iterations.")
	fs.IntVar(&config.Count, "n", DefaultCount, "Number of loop iterations (shorthand).")
	fs.Int64Var(&config.Offset, "offset", DefaultOffset, "Index offset passed to printfib.")
	fs.DurationVar(&config.Delay, "delay", DefaultDelay, "Pause before every iteration but the first.")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Maximum run time (e.g. 1m); 0 disables.")
	fs.BoolVar(&config.Banner, "banner", false, "Print a '[<label> main]' line first.")
	fs.BoolVar(&config.Measure, "measure", false, "Append call durations to host lines.")
	fs.BoolVar(&config.MarkLast, "mark-last", false, "Mark the last index whose value fits in int64.")
	fs.BoolVar(&config.Compare, "compare", false, "Run all selected variants and compare their results.")
	fs.Int64Var(&config.CompareMax, "compare-max", 0, "Highest index checked by -compare (0 picks a limit per variant).")
	fs.BoolVar(&config.Verbose, "verbose", false, "List every compared value with -compare.")
	fs.BoolVar(&config.Verbose, "v", false, "List every compared value (shorthand).")
	fs.BoolVar(&config.TUI, "tui", false, "Run the loop inside an interactive dashboard.")
	fs.BoolVar(&config.REPL, "repl", false, "Start an interactive shell over the loaded library.")
	fs.BoolVar(&config.List, "list", false, "List the builtin variants and exit.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: trace, debug, info, warn, error, disabled.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Suppress spinners and informational output.")
	fs.BoolVar(&config.Quiet, "q", false, "Suppress informational output (shorthand).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit.")
	fs.BoolVar(&config.ShowVersion, "V", false, "Print the version and exit (shorthand).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&config, fs)

	config.Variant = strings.ToLower(config.Variant)
	config.Backend = strings.ToLower(config.Backend)
	config.LogLevel = strings.ToLower(config.LogLevel)

	if config.ShowVersion || config.List || config.Completion != "" {
		return config, nil
	}
	if err := config.Validate(availableVariants); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}
