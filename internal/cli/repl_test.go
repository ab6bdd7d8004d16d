package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
)

func newTestREPL(input string) (*REPL, *bytes.Buffer) {
	var out bytes.Buffer
	factory := fibonacci.NewDefaultFactory()
	load := func(variant string) (fibonacci.Library, error) {
		alg, err := factory.Get(variant)
		if err != nil {
			return nil, err
		}
		return fibonacci.NewModule(alg, fibonacci.WithOutput(&out)), nil
	}
	lib, _ := load("recursive")
	r := NewREPL(lib, REPLConfig{Variant: "recursive", Factory: factory, Load: load})
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	return r, &out
}

func TestREPLCommands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"fib", "fib 10\n", []string{"fib(10) = 55"}},
		{"bare number", "20\n", []string{"fib(20) = 6765"}},
		{"print", "print 21\n", []string{"[Go Fibonacci Library v1] fib(21) = 10946"}},
		{"version", "version\n", []string{"recursive v1"}},
		{"use", "use matrix\nversion\n", []string{"Loaded matrix v4", "matrix v4"}},
		{"use unknown", "use quantum\n", []string{"quantum"}},
		{"compare", "compare 12\n", []string{"naive", "binet", "144"}},
		{"compare large skips exponential", "compare 90\n", []string{"skipping exponential variants", "matrix     2880067194370816120"}},
		{"compare beyond exact bound", "compare 80\n", []string{"binet", "inexact"}},
		{"compare capped", "compare 9223372036854775807\nfib 5\n", []string{"compare is limited to indices up to 92", "fib(5) = 5"}},
		{"overflow warning", "use iterative\nfib 93\n", []string{"does not fit in int64"}},
		{"list", "list\n", []string{"Available variants:"}},
		{"invalid index", "fib -3\nfib x\nfib\n", []string{"Invalid index: -3", "Invalid index: x", "Missing index"}},
		{"unknown", "frobnicate\n", []string{"Unknown command: frobnicate"}},
		{"exit", "exit\nfib 10\n", []string{"Goodbye!"}},
		{"eof without newline", "fib 5", []string{"fib(5) = 5", "Goodbye!"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, out := newTestREPL(tt.input)
			if err := r.Start(); err != nil {
				t.Fatalf("Start: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestREPLExitStopsProcessing(t *testing.T) {
	t.Parallel()
	r, out := newTestREPL("exit\nfib 10\n")
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "fib(10)") {
		t.Error("commands after exit should not run")
	}
}

type failingOutput struct{ bytes.Buffer }

func (*failingOutput) Flush() error { return errors.New("EPIPE") }

func TestREPLPrintFlushFailureIsFatal(t *testing.T) {
	t.Parallel()
	lib := fibonacci.NewModule(fibonacci.Iterative{}, fibonacci.WithOutput(&failingOutput{}))
	r := NewREPL(lib, REPLConfig{})
	r.SetInput(strings.NewReader("print 3\nfib 4\n"))
	var out bytes.Buffer
	r.SetOutput(&out)

	err := r.Start()
	var flushErr *apperrors.FlushError
	if !errors.As(err, &flushErr) {
		t.Fatalf("expected FlushError, got %v", err)
	}
	if strings.Contains(out.String(), "fib(4)") {
		t.Error("shell should stop after a flush failure")
	}
}

func TestREPLUseWithoutLoader(t *testing.T) {
	t.Parallel()
	r := NewREPL(fibonacci.NewModule(fibonacci.Table{}), REPLConfig{})
	r.SetInput(strings.NewReader("use matrix\n"))
	var out bytes.Buffer
	r.SetOutput(&out)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "cannot be switched") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestREPLCompareCapRunsNoVariant(t *testing.T) {
	t.Parallel()
	r, out := newTestREPL("compare 93\n")
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for _, name := range []string{"iterative", "table", "matrix"} {
		if strings.Contains(out.String(), "  "+name) {
			t.Errorf("compare 93 ran %s:\n%s", name, out.String())
		}
	}
}
