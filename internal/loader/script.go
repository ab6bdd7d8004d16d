package loader

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
)

// loadScript interprets a Go source file. The interpreter's fmt output is
// routed to the shared Output, which is flushed after every PrintFib.
func (l *Loader) loadScript(spec Spec) (fibonacci.Library, error) {
	if err := requirePath(BackendScript, spec); err != nil {
		return nil, err
	}
	fail := func(err error) error {
		return &apperrors.LoadError{Backend: string(BackendScript), Path: spec.Path, Cause: err}
	}

	src, err := os.ReadFile(spec.Path)
	if err != nil {
		return nil, fail(err)
	}
	pkg, err := packageName(spec.Path, src)
	if err != nil {
		return nil, fail(err)
	}

	i := interp.New(interp.Options{Stdout: l.out, Stderr: os.Stderr})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fail(err)
	}
	if _, err := i.Eval(string(src)); err != nil {
		return nil, fail(err)
	}

	table, err := resolve(string(BackendScript), spec.Path, func(name string) (any, error) {
		v, err := i.Eval(pkg + "." + name)
		if err != nil {
			return nil, err
		}
		if !v.IsValid() || !v.CanInterface() {
			return nil, fmt.Errorf("symbol %s has no value", name)
		}
		return v.Interface(), nil
	})
	if err != nil {
		return nil, err
	}
	return &tableLibrary{table: table, flush: l.out.Flush}, nil
}

// packageName reads the package clause of a Go source file.
func packageName(path string, src []byte) (string, error) {
	f, err := parser.ParseFile(token.NewFileSet(), path, src, parser.PackageClauseOnly)
	if err != nil {
		return "", err
	}
	return f.Name.Name, nil
}
