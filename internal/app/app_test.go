package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
	"github.com/agbru/fibhost/internal/host"
)

const defaultOutput = "fib(0) = 0\n" +
	"[Go Fibonacci Library v2] fib(21) = 10946\n" +
	"fib(1) = 1\n" +
	"[Go Fibonacci Library v2] fib(22) = 17711\n" +
	"fib(2) = 1\n" +
	"[Go Fibonacci Library v2] fib(23) = 28657\n"

// run builds and runs the application, returning exit code, stdout and stderr.
func run(t *testing.T, args []string, opts ...AppOption) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts = append([]AppOption{WithInteractive(false), WithTracerProvider(noop.NewTracerProvider())}, opts...)
	// Colors are global state; keep every parallel run on the plain theme.
	application, err := New(append([]string{"fibhost", "-no-color"}, args...), &stderr, opts...)
	if err != nil {
		t.Fatalf("New(%v): %v", args, err)
	}
	code := application.Run(context.Background(), &stdout)
	return code, stdout.String(), stderr.String()
}

func TestRun_HostLoop(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default", []string{"-delay", "0", "-q"}, defaultOutput},
		{
			"recursive with C banner",
			[]string{"-delay", "0", "-q", "-variant", "recursive", "-label", "C", "-banner", "-count", "1"},
			"[C main]\nfib(0) = 0\n[C Fibonacci Library v1] fib(21) = 10946\n",
		},
		{
			"script backend",
			[]string{"-delay", "0", "-q", "-backend", "script", "-path", filepath.Join("..", "loader", "testdata", "iterative", "fib.go")},
			defaultOutput,
		},
		{
			"offset at the last exact index",
			[]string{"-delay", "0", "-q", "-count", "1", "-offset", "92"},
			"fib(0) = 0\n[Go Fibonacci Library v2] fib(92) = 7540113804746346429\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := run(t, tt.args)
			if code != apperrors.ExitSuccess {
				t.Fatalf("exit code %d, stderr:\n%s", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout:\n%s\nwant:\n%s", stdout, tt.want)
			}
		})
	}
}

func TestRun_ExecutionConfigOnStderr(t *testing.T) {
	t.Parallel()
	code, stdout, stderr := run(t, []string{"-delay", "0", "-no-color"})
	if code != apperrors.ExitSuccess || stdout != defaultOutput {
		t.Fatalf("code=%d stdout=%q", code, stdout)
	}
	if !strings.Contains(stderr, "--- Execution Configuration ---") {
		t.Errorf("stderr should describe the run, got %q", stderr)
	}
}

func TestRun_ExitCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		args   []string
		want   int
		stderr string
	}{
		{"missing script", []string{"-q", "-backend", "script", "-path", "does-not-exist.go"}, apperrors.ExitErrorLoad, "Error:"},
		{"timeout", []string{"-q", "-delay", "1h", "-timeout", "20ms"}, apperrors.ExitErrorTimeout, "Timeout"},
		{"bad metrics address", []string{"-q", "-delay", "0", "-metrics-addr", "256.0.0.1:bad"}, apperrors.ExitErrorGeneric, "metrics server"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, _, stderr := run(t, tt.args)
			if code != tt.want {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.want, stderr)
			}
			if !strings.Contains(stderr, tt.stderr) {
				t.Errorf("stderr %q does not contain %q", stderr, tt.stderr)
			}
		})
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRun_FlushFailureIsFatal(t *testing.T) {
	t.Parallel()
	var stderr bytes.Buffer
	application, err := New([]string{"fibhost", "-no-color", "-q", "-delay", "0"}, &stderr, WithInteractive(false))
	if err != nil {
		t.Fatal(err)
	}
	if code := application.Run(context.Background(), brokenWriter{}); code != apperrors.ExitErrorFlush {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorFlush)
	}
	if !strings.Contains(stderr.String(), "fatal: unable to flush stdout (host)") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestRun_Compare(t *testing.T) {
	t.Parallel()
	code, stdout, stderr := run(t, []string{"-compare", "-variant", "all", "-compare-max", "20", "-q", "-no-color"})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr)
	}
	for _, name := range []string{"naive", "recursive", "iterative", "table", "matrix", "binet", "Fastest variant"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("comparison output missing %q:\n%s", name, stdout)
		}
	}
}

func TestRun_REPL(t *testing.T) {
	t.Parallel()
	code, stdout, _ := run(t, []string{"-repl", "-no-color"}, WithInput(strings.NewReader("fib 10\nprint 21\nuse matrix\nversion\nexit\n")))
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d", code)
	}
	for _, want := range []string{"fib(10) = 55", "[Go Fibonacci Library v2] fib(21) = 10946", "Loaded matrix v4"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("REPL output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_InformationalModes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-list", "-no-color"}, "Available variants:"},
		{[]string{"-version"}, "fibhost "},
		{[]string{"-completion", "bash"}, "complete -F"},
	}
	for _, tt := range tests {
		code, stdout, _ := run(t, tt.args)
		if code != apperrors.ExitSuccess || !strings.Contains(stdout, tt.want) {
			t.Errorf("%v: code=%d stdout=%q", tt.args, code, stdout)
		}
	}

	code, _, stderr := run(t, []string{"-completion", "powershell"})
	if code != apperrors.ExitErrorConfig || !strings.Contains(stderr, "Error generating completion") {
		t.Errorf("unsupported shell: code=%d stderr=%q", code, stderr)
	}
}

func TestRun_MetricsServer(t *testing.T) {
	t.Parallel()
	code, stdout, stderr := run(t, []string{"-q", "-delay", "0", "-metrics-addr", "127.0.0.1:0"})
	if code != apperrors.ExitSuccess || stdout != defaultOutput {
		t.Errorf("code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()
	var stderr bytes.Buffer
	if _, err := New([]string{"fibhost", "-h"}, &stderr); !IsHelpError(err) {
		t.Errorf("-h should return flag.ErrHelp, got %v", err)
	}
	_, err := New([]string{"fibhost", "-count", "-1"}, &stderr)
	if apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
		t.Errorf("negative count: got %v", err)
	}
	if IsHelpError(err) {
		t.Error("config error reported as help")
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"--version"}, true},
		{[]string{"-delay", "0", "-V"}, true},
		{[]string{"-variant", "iterative"}, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

type parentKey struct{}

// parentRecorder records each span name with the name of the span that was
// active in the context it started from.
type parentRecorder struct {
	noop.TracerProvider
	mu      sync.Mutex
	parents map[string]string
}

func (r *parentRecorder) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return parentTracer{r: r}
}

type parentTracer struct {
	noop.Tracer
	r *parentRecorder
}

func (t parentTracer) Start(ctx context.Context, name string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	parent, _ := ctx.Value(parentKey{}).(string)
	t.r.mu.Lock()
	t.r.parents[name] = parent
	t.r.mu.Unlock()
	return context.WithValue(ctx, parentKey{}, name), noop.Span{}
}

func TestInstrument_CallSpansNestUnderRun(t *testing.T) {
	t.Parallel()
	rec := &parentRecorder{parents: map[string]string{}}
	application, err := New([]string{"fibhost", "-no-color", "-tui"}, io.Discard, WithTracerProvider(rec))
	if err != nil {
		t.Fatal(err)
	}

	lib := fibonacci.NewModule(fibonacci.Iterative{}, fibonacci.WithOutput(io.Discard))
	_, observers, end := application.instrument(context.Background(), lib)
	for _, o := range observers {
		o.Observe(host.Event{Op: host.OpFib, Index: 2, Value: 1})
	}
	end(nil)

	if parent, ok := rec.parents["host.run"]; !ok || parent != "" {
		t.Errorf("host.run should be a root span, parents = %v", rec.parents)
	}
	if parent := rec.parents["library.fib"]; parent != "host.run" {
		t.Errorf("library.fib parent = %q, want host.run", parent)
	}
}
