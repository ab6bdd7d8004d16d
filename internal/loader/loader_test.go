package loader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/davecgh/go-spew/spew"

	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
)

// recordingOutput is an Output whose flushed content can be inspected.
type recordingOutput struct {
	pending bytes.Buffer
	flushed bytes.Buffer
	flushes int
}

func (r *recordingOutput) Write(p []byte) (int, error) { return r.pending.Write(p) }

func (r *recordingOutput) Flush() error {
	r.flushes++
	_, err := r.pending.WriteTo(&r.flushed)
	return err
}

func TestParseBackend(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"builtin", BackendBuiltin, false},
		{"PLUGIN", BackendPlugin, false},
		{"script", BackendScript, false},
		{"wasm", "", true},
	}
	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBackend(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseBackend(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if tt.wantErr && apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
			t.Errorf("ParseBackend(%q) should fail with a configuration error", tt.in)
		}
	}
}

func TestLoad_Builtin(t *testing.T) {
	t.Parallel()
	out := &recordingOutput{}
	l := New(out)

	lib, err := l.Load(context.Background(), Spec{Backend: BackendBuiltin, Variant: "iterative", Label: "C"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lib.Version() != fibonacci.VersionIterative {
		t.Errorf("Version() = %d", lib.Version())
	}
	if err := lib.PrintFib(22); err != nil {
		t.Fatalf("PrintFib: %v", err)
	}
	if got, want := out.flushed.String(), "[C Fibonacci Library v2] fib(22) = 17711\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoad_BuiltinUnknownVariant(t *testing.T) {
	t.Parallel()
	_, err := New(&recordingOutput{}).Load(context.Background(), Spec{Variant: "quantum"})

	var loadErr *apperrors.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %s", spew.Sdump(err))
	}
	if loadErr.Backend != string(BackendBuiltin) {
		t.Errorf("Backend = %q", loadErr.Backend)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(&recordingOutput{}).Load(ctx, Spec{Variant: "recursive"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()
	for _, b := range []Backend{BackendPlugin, BackendScript} {
		_, err := New(&recordingOutput{}).Load(context.Background(), Spec{Backend: b})
		var loadErr *apperrors.LoadError
		if !errors.As(err, &loadErr) {
			t.Errorf("%s: expected *LoadError, got %v", b, err)
		}
	}
}

func TestLoad_Script(t *testing.T) {
	t.Parallel()
	tests := []struct {
		dir     string
		version uint16
		line    string
	}{
		{"recursive", 1, "[Go Fibonacci Library v1] fib(21) = 10946\n"},
		{"iterative", 2, "[Go Fibonacci Library v2] fib(21) = 10946\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.dir, func(t *testing.T) {
			t.Parallel()
			out := &recordingOutput{}
			lib, err := New(out).Load(context.Background(), Spec{
				Backend: BackendScript,
				Path:    filepath.Join("testdata", tt.dir, "fib.go"),
			})
			if err != nil {
				t.Fatalf("Load: %v", err)
			}

			if lib.Version() != tt.version {
				t.Errorf("Version() = %d, want %d", lib.Version(), tt.version)
			}
			for n, want := range map[int64]int64{0: 0, 1: 1, 2: 1, 10: 55} {
				if got := lib.Fib(n); got != want {
					t.Errorf("Fib(%d) = %d, want %d", n, got, want)
				}
			}
			if err := lib.PrintFib(21); err != nil {
				t.Fatalf("PrintFib: %v", err)
			}
			if out.flushed.String() != tt.line {
				t.Errorf("got %q, want %q", out.flushed.String(), tt.line)
			}
			if out.flushes != 1 {
				t.Errorf("expected one flush after PrintFib, got %d", out.flushes)
			}
		})
	}
}

func TestLoad_ScriptSymbolErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		dir       string
		symbol    string
		typeError bool
	}{
		{"broken", SymbolPrintFib, false},
		{"mistyped", SymbolFib, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.dir, func(t *testing.T) {
			t.Parallel()
			_, err := New(&recordingOutput{}).Load(context.Background(), Spec{
				Backend: BackendScript,
				Path:    filepath.Join("testdata", tt.dir, "fib.go"),
			})
			var loadErr *apperrors.LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected *LoadError, got %s", spew.Sdump(err))
			}
			if loadErr.Symbol != tt.symbol {
				t.Errorf("Symbol = %q, want %q", loadErr.Symbol, tt.symbol)
			}
			if tt.typeError && !errors.Is(err, ErrSymbolType) {
				t.Errorf("expected ErrSymbolType, got %v", err)
			}
		})
	}
}

func TestLoad_ScriptMissingFile(t *testing.T) {
	t.Parallel()
	_, err := New(&recordingOutput{}).Load(context.Background(), Spec{Backend: BackendScript, Path: "testdata/none.go"})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestLoad_Plugin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping plugin build in short mode")
	}
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("Go plugins are not supported on " + runtime.GOOS)
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available")
	}

	so := filepath.Join(t.TempDir(), "libiterative.so")
	cmd := exec.Command("go", "build", "-buildmode=plugin", "-o", so, "./plugins/iterative")
	cmd.Dir = filepath.Join("..", "..")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("plugin build unavailable: %v\n%s", err, out)
	}

	lib, err := New(&recordingOutput{}).Load(context.Background(), Spec{Backend: BackendPlugin, Path: so})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lib.Version() != 2 {
		t.Errorf("Version() = %d, want 2", lib.Version())
	}
	if got := lib.Fib(23); got != 28657 {
		t.Errorf("Fib(23) = %d, want 28657", got)
	}
}

func TestLoad_PluginOpenFailure(t *testing.T) {
	t.Parallel()
	_, err := New(&recordingOutput{}).Load(context.Background(), Spec{Backend: BackendPlugin, Path: "testdata/missing.so"})
	var loadErr *apperrors.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %s", spew.Sdump(err))
	}
	if loadErr.Symbol != "" {
		t.Errorf("open failures carry no symbol, got %q", loadErr.Symbol)
	}
}
