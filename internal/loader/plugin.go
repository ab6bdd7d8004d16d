package loader

import (
	"plugin"

	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
)

// loadPlugin opens a Go plugin. The plugin writes to the process stdout
// through its own, unbuffered, os.Stdout, so there is nothing to flush after
// PrintFib; the host flushes its own buffer before every call.
func (l *Loader) loadPlugin(spec Spec) (fibonacci.Library, error) {
	if err := requirePath(BackendPlugin, spec); err != nil {
		return nil, err
	}
	p, err := plugin.Open(spec.Path)
	if err != nil {
		return nil, &apperrors.LoadError{Backend: string(BackendPlugin), Path: spec.Path, Cause: err}
	}
	table, err := resolve(string(BackendPlugin), spec.Path, func(name string) (any, error) {
		return p.Lookup(name)
	})
	if err != nil {
		return nil, err
	}
	return &tableLibrary{table: table}, nil
}
