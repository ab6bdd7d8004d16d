package fibonacci

import (
	"bufio"
	"fmt"
	"io"
	"os"

	apperrors "github.com/agbru/fibhost/internal/errors"
)

// Output is a writer whose content only reaches its destination on Flush.
// The host and the library share one Output so that their lines interleave
// in call order.
type Output interface {
	io.Writer
	Flush() error
}

// NewOutput returns w unchanged when it already flushes, and wraps it in a
// bufio.Writer otherwise.
func NewOutput(w io.Writer) Output {
	if o, ok := w.(Output); ok {
		return o
	}
	return bufio.NewWriter(w)
}

// Module binds an Algorithm to the Library contract.
type Module struct {
	alg   Algorithm
	label string
	out   Output
}

// ModuleOption configures a Module.
type ModuleOption func(*Module)

// WithLabel sets the language tag printed by PrintFib.
func WithLabel(label string) ModuleOption {
	return func(m *Module) { m.label = label }
}

// WithOutput sets the destination of PrintFib.
func WithOutput(w io.Writer) ModuleOption {
	return func(m *Module) { m.out = NewOutput(w) }
}

// NewModule creates a Module for alg. Without WithOutput it prints to a
// buffered stdout.
func NewModule(alg Algorithm, opts ...ModuleOption) *Module {
	m := &Module{alg: alg, label: DefaultLabel}
	for _, opt := range opts {
		opt(m)
	}
	if m.out == nil {
		m.out = NewOutput(os.Stdout)
	}
	return m
}

var _ Library = (*Module)(nil)

// Version returns the variant's version tag.
func (m *Module) Version() uint16 { return m.alg.Version() }

// Fib returns F(n) as computed by the variant.
func (m *Module) Fib(n int64) int64 { return m.alg.Fib(n) }

// PrintFib writes the tagged line for F(n) and flushes it.
func (m *Module) PrintFib(n int64) error {
	fmt.Fprint(m.out, FormatLibraryLine(m.label, m.alg.Version(), n, m.alg.Fib(n)))
	if err := m.out.Flush(); err != nil {
		return &apperrors.FlushError{Site: "printfib", Cause: err}
	}
	return nil
}

// Algorithm returns the wrapped algorithm.
func (m *Module) Algorithm() Algorithm { return m.alg }

// Label returns the language tag.
func (m *Module) Label() string { return m.label }

// Describe returns the descriptor of the wrapped algorithm under the
// module's label.
func (m *Module) Describe() Descriptor {
	d := Describe(m.alg)
	d.Label = m.label
	return d
}

// FormatLibraryLine renders the line PrintFib emits, including the newline.
func FormatLibraryLine(label string, version uint16, n, value int64) string {
	return fmt.Sprintf("[%s Fibonacci Library v%d] fib(%d) = %d\n", label, version, n, value)
}

// FormatHostLine renders the host's line, including the newline.
func FormatHostLine(n, value int64) string {
	return fmt.Sprintf("fib(%d) = %d\n", n, value)
}
