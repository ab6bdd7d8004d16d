package loader

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/ZenLiuCN/fn"

	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
)

// Exported symbol names every late-bound library must provide.
const (
	SymbolVersion  = "Version"
	SymbolFib      = "Fib"
	SymbolPrintFib = "PrintFib"
)

// ErrSymbolType reports a symbol whose type does not match the ABI.
var ErrSymbolType = errors.New("symbol has the wrong type")

// Table holds the resolved ABI of a late-bound library.
type Table struct {
	Version  uint16
	Fib      func(int64) int64
	PrintFib func(int64)
}

// lookupFunc returns the raw value bound to a symbol name.
type lookupFunc func(name string) (any, error)

// resolve looks up the three ABI symbols and checks their types.
func resolve(backend, path string, lookup lookupFunc) (*Table, error) {
	fail := func(sym string, err error) error {
		return &apperrors.LoadError{Backend: backend, Path: path, Symbol: sym, Cause: err}
	}

	raw, err := lookup(SymbolVersion)
	if err != nil {
		return nil, fail(SymbolVersion, err)
	}
	version, err := asVersion(raw)
	if err != nil {
		return nil, fail(SymbolVersion, err)
	}

	raw, err = lookup(SymbolFib)
	if err != nil {
		return nil, fail(SymbolFib, err)
	}
	fib, ok := raw.(func(int64) int64)
	if !ok {
		return nil, fail(SymbolFib, fmt.Errorf("%w: got %T, want func(int64) int64", ErrSymbolType, raw))
	}

	raw, err = lookup(SymbolPrintFib)
	if err != nil {
		return nil, fail(SymbolPrintFib, err)
	}
	printFib, ok := raw.(func(int64))
	if !ok {
		return nil, fail(SymbolPrintFib, fmt.Errorf("%w: got %T, want func(int64)", ErrSymbolType, raw))
	}

	return &Table{Version: version, Fib: fib, PrintFib: printFib}, nil
}

// asVersion accepts the forms a version symbol takes across backends: a
// plugin exposes variables as pointers, an interpreter as values, and a
// getter function is accepted from either.
func asVersion(raw any) (uint16, error) {
	switch v := raw.(type) {
	case uint16:
		return v, nil
	case *uint16:
		if v == nil {
			return 0, fmt.Errorf("%w: nil *uint16", ErrSymbolType)
		}
		return *v, nil
	case func() uint16:
		return v(), nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n := rv.Int(); n >= 0 && n <= 0xFFFF {
			return uint16(n), nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n := rv.Uint(); n <= 0xFFFF {
			return uint16(n), nil
		}
	}
	return 0, fmt.Errorf("%w: got %T, want uint16", ErrSymbolType, raw)
}

// Symbols describes the ABI a library exposes, keyed by symbol name, for
// display by inspection tools.
func Symbols(lib fibonacci.Library) map[string]string {
	syms := map[string]string{
		SymbolVersion:  fmt.Sprintf("uint16 = %d", lib.Version()),
		SymbolFib:      "func(int64) int64",
		SymbolPrintFib: "func(int64)",
	}
	if m, ok := lib.(*fibonacci.Module); ok {
		syms["Variant"] = m.Algorithm().Name()
		syms["Label"] = m.Label()
	}
	return syms
}

// SortedSymbolNames returns the keys of a symbol map in sorted order.
func SortedSymbolNames(syms map[string]string) []string {
	names := fn.MapKeys(syms)
	sort.Strings(names)
	return names
}
