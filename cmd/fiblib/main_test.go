package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/fibhost/internal/errors"
)

func runFiblib(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := newApp(&out, &errOut).Run(append([]string{"fiblib"}, args...))
	return out.String(), err
}

func TestList(t *testing.T) {
	t.Parallel()
	out, err := runFiblib(t, "list")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"naive", "recursive", "iterative", "table", "matrix", "binet"} {
		if !strings.Contains(out, name) {
			t.Errorf("list output missing %q:\n%s", name, out)
		}
	}
}

func TestCall(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"fib", []string{"call", "0", "10", "92"}, "fib(0) = 0\nfib(10) = 55\nfib(92) = 7540113804746346429\n"},
		{"printfib", []string{"call", "--print", "--label", "C", "--variant", "recursive", "21"}, "[C Fibonacci Library v1] fib(21) = 10946\n"},
		{
			"script",
			[]string{"call", "--backend", "script", "--path", filepath.Join("..", "..", "internal", "loader", "testdata", "iterative", "fib.go"), "--print", "22"},
			"[Go Fibonacci Library v2] fib(22) = 17711\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := runFiblib(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}

func TestCallErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no index", []string{"call"}, apperrors.ExitErrorConfig},
		{"bad index", []string{"call", "x"}, apperrors.ExitErrorConfig},
		{"negative index", []string{"call", "-v", "table", "--", "-3"}, apperrors.ExitErrorConfig},
		{"bad backend", []string{"call", "--backend", "dll", "1"}, apperrors.ExitErrorConfig},
		{"unknown variant", []string{"call", "--variant", "quantum", "1"}, apperrors.ExitErrorLoad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := runFiblib(t, tt.args...)
			if got := apperrors.ExitCode(err); got != tt.code {
				t.Errorf("exit code = %d (%v), want %d", got, err, tt.code)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()
	path := filepath.Join("..", "..", "internal", "loader", "testdata", "recursive", "fib.go")
	out, err := runFiblib(t, "inspect", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"(script)", "Fib", "PrintFib", "uint16 = 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}

	if _, err := runFiblib(t, "inspect", "library.dll"); apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
		t.Errorf("unknown extension: got %v", err)
	}
}

func TestListLabel(t *testing.T) {
	t.Parallel()
	out, err := runFiblib(t, "list", "--label", "Rust")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "matrix") || !strings.Contains(out, "[Rust]") {
		t.Errorf("list output missing relabelled matrix entry:\n%s", out)
	}
}

func TestLoadFailureLogging(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantInfo bool
	}{
		{"quiet", []string{"call", "--variant", "quantum", "1"}, "fiblib: [ERROR] library load failed", false},
		{"debug", []string{"--debug", "call", "--variant", "quantum", "1"}, "library load failed", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out, errOut bytes.Buffer
			if err := newApp(&out, &errOut).Run(append([]string{"fiblib"}, tt.args...)); err == nil {
				t.Fatal("expected a load error")
			}
			if !strings.Contains(errOut.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", errOut.String(), tt.wantErr)
			}
			if !tt.wantInfo && strings.Contains(errOut.String(), "[INFO]") {
				t.Errorf("quiet mode logged info lines: %q", errOut.String())
			}
		})
	}
}
