// Command fiblib inspects and calls Fibonacci libraries outside the host
// loop.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
	"github.com/agbru/fibhost/internal/loader"
	"github.com/agbru/fibhost/internal/logging"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		os.Exit(apperrors.HandleError(err, os.Stderr))
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "fiblib"
	app.Usage = "inspect and call Fibonacci libraries"
	app.Description = "fiblib resolves a library through the same loader as fibhost and reports its symbols or calls it directly."
	app.Writer = out
	app.ErrWriter = errOut
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log loader activity"},
	}
	app.Commands = []*cli.Command{
		{
			Name:  "list",
			Usage: "list the builtin variants",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Value: fibonacci.DefaultLabel, Usage: "language tag to show"},
			},
			Action: listVariants,
		},
		{
			Name:      "inspect",
			Usage:     "resolve a plugin or script and print its symbols",
			ArgsUsage: "<path>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Usage: "plugin or script (default: from the file extension)"},
			},
			Action: inspect,
		},
		{
			Name:      "call",
			Usage:     "call fib for each index, or printfib with --print",
			ArgsUsage: "<index>...",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Value: string(loader.BackendBuiltin), Usage: "builtin, plugin or script"},
				&cli.StringFlag{Name: "variant", Aliases: []string{"v"}, Value: "iterative", Usage: "builtin variant"},
				&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "plugin or script file"},
				&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Value: fibonacci.DefaultLabel, Usage: "language tag of builtin variants"},
				&cli.BoolFlag{Name: "print", Usage: "call printfib instead of fib"},
			},
			Action: call,
		},
	}
	return app
}

func logger(ctx *cli.Context) logging.Logger {
	if ctx.Bool("debug") {
		return logging.NewLogger(ctx.App.ErrWriter, "fiblib")
	}
	// Without --debug only failures are reported, as plain lines.
	return quietLogger{logging.NewStdLoggerAdapter(log.New(ctx.App.ErrWriter, "fiblib: ", 0))}
}

// quietLogger drops everything below the error level.
type quietLogger struct {
	*logging.StdLoggerAdapter
}

func (quietLogger) Info(string, ...logging.Field)  {}
func (quietLogger) Debug(string, ...logging.Field) {}
func (quietLogger) Printf(string, ...any)          {}
func (quietLogger) Println(...any)                 {}

func listVariants(ctx *cli.Context) error {
	for _, alg := range fibonacci.GlobalFactory().GetAll() {
		d := fibonacci.NewModule(alg, fibonacci.WithLabel(ctx.String("label")), fibonacci.WithOutput(io.Discard)).Describe()
		fmt.Fprintf(ctx.App.Writer, "%-10s v%d  %-9s [%s]\n", d.Name, d.Version, d.Complexity, d.Label)
	}
	return nil
}

// backendFor picks the backend from the flag or the file extension.
func backendFor(flagValue, path string) (loader.Backend, error) {
	if flagValue != "" {
		return loader.ParseBackend(flagValue)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".so":
		return loader.BackendPlugin, nil
	case ".go":
		return loader.BackendScript, nil
	}
	return "", apperrors.NewConfigError("cannot infer a backend for %q, use --backend", path)
}

func inspect(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return apperrors.NewConfigError("inspect requires a library path")
	}
	backend, err := backendFor(ctx.String("backend"), path)
	if err != nil {
		return err
	}

	out := fibonacci.NewOutput(ctx.App.Writer)
	lib, err := loader.New(out, loader.WithLogger(logger(ctx))).Load(ctx.Context, loader.Spec{Backend: backend, Path: path})
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "%s (%s)\n", path, backend)
	syms := loader.Symbols(lib)
	for _, name := range loader.SortedSymbolNames(syms) {
		fmt.Fprintf(ctx.App.Writer, "  %-9s %s\n", name, syms[name])
	}
	return nil
}

func call(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return apperrors.NewConfigError("call requires at least one index")
	}
	indices := make([]int64, 0, ctx.NArg())
	for _, arg := range ctx.Args().Slice() {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || n < 0 {
			return apperrors.NewConfigError("invalid index %q", arg)
		}
		indices = append(indices, n)
	}

	backend, err := loader.ParseBackend(ctx.String("backend"))
	if err != nil {
		return err
	}
	out := fibonacci.NewOutput(ctx.App.Writer)
	lib, err := loader.New(out, loader.WithLogger(logger(ctx))).Load(ctx.Context, loader.Spec{
		Backend: backend,
		Variant: ctx.String("variant"),
		Path:    ctx.String("path"),
		Label:   ctx.String("label"),
	})
	if err != nil {
		return err
	}

	for _, n := range indices {
		if ctx.Bool("print") {
			if err := lib.PrintFib(n); err != nil {
				return err
			}
			continue
		}
		fmt.Fprint(out, fibonacci.FormatHostLine(n, lib.Fib(n)))
	}
	if err := out.Flush(); err != nil {
		return &apperrors.FlushError{Site: "fiblib", Cause: err}
	}
	return nil
}
