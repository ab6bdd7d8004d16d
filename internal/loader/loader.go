package loader

import (
	"context"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
	"github.com/agbru/fibhost/internal/logging"
)

// Backend names the mechanism used to resolve a library.
type Backend string

const (
	BackendBuiltin Backend = "builtin"
	BackendPlugin  Backend = "plugin"
	BackendScript  Backend = "script"
)

// Backends lists the supported backends.
func Backends() []Backend {
	return []Backend{BackendBuiltin, BackendPlugin, BackendScript}
}

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	for _, b := range Backends() {
		if string(b) == strings.ToLower(s) {
			return b, nil
		}
	}
	return "", apperrors.NewConfigError("unknown backend %q (available: builtin, plugin, script)", s)
}

// Spec selects a library.
type Spec struct {
	// Backend is the resolution mechanism.
	Backend Backend
	// Variant is the registry name, used by the builtin backend.
	Variant string
	// Path is the plugin (.so) or Go source file for late-bound backends.
	Path string
	// Label is the language tag of builtin variants.
	Label string
}

// Loader resolves libraries according to a Spec.
type Loader struct {
	factory *fibonacci.Factory
	out     fibonacci.Output
	logger  logging.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFactory sets the registry used by the builtin backend.
func WithFactory(f *fibonacci.Factory) Option {
	return func(l *Loader) { l.factory = f }
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// New creates a Loader. Libraries print to out, which should be the same
// Output the host writes to.
func New(out io.Writer, opts ...Option) *Loader {
	l := &Loader{out: fibonacci.NewOutput(out)}
	for _, opt := range opts {
		opt(l)
	}
	if l.factory == nil {
		l.factory = fibonacci.GlobalFactory()
	}
	if l.logger == nil {
		l.logger = logging.Nop()
	}
	return l
}

// Load resolves the library described by spec.
func (l *Loader) Load(ctx context.Context, spec Spec) (fibonacci.Library, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		lib fibonacci.Library
		err error
	)
	switch spec.Backend {
	case BackendBuiltin, "":
		lib, err = l.loadBuiltin(spec)
	case BackendPlugin:
		lib, err = l.loadPlugin(spec)
	case BackendScript:
		lib, err = l.loadScript(spec)
	default:
		return nil, apperrors.NewConfigError("unknown backend %q", spec.Backend)
	}
	if err != nil {
		l.logger.Error("library load failed", err,
			logging.String("backend", string(spec.Backend)), logging.String("path", spec.Path))
		return nil, err
	}

	l.logger.Info("library loaded",
		logging.String("backend", string(spec.Backend)),
		logging.String("variant", spec.Variant),
		logging.String("path", spec.Path),
		logging.Int("version", int(lib.Version())))
	return lib, nil
}

func (l *Loader) loadBuiltin(spec Spec) (fibonacci.Library, error) {
	alg, err := l.factory.Get(spec.Variant)
	if err != nil {
		return nil, &apperrors.LoadError{Backend: string(BackendBuiltin), Cause: err}
	}
	opts := []fibonacci.ModuleOption{fibonacci.WithOutput(l.out)}
	if spec.Label != "" {
		opts = append(opts, fibonacci.WithLabel(spec.Label))
	}
	return fibonacci.NewModule(alg, opts...), nil
}

func requirePath(backend Backend, spec Spec) error {
	if spec.Path == "" {
		return &apperrors.LoadError{Backend: string(backend), Cause: fmt.Errorf("no library path given")}
	}
	return nil
}

// tableLibrary adapts a resolved symbol Table to fibonacci.Library.
type tableLibrary struct {
	table *Table
	flush func() error
}

var _ fibonacci.Library = (*tableLibrary)(nil)

func (t *tableLibrary) Version() uint16   { return t.table.Version }
func (t *tableLibrary) Fib(n int64) int64 { return t.table.Fib(n) }

func (t *tableLibrary) PrintFib(n int64) error {
	t.table.PrintFib(n)
	if t.flush == nil {
		return nil
	}
	if err := t.flush(); err != nil {
		return &apperrors.FlushError{Site: "printfib", Cause: err}
	}
	return nil
}
