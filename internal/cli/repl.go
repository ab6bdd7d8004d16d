package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fibhost/internal/fibonacci"
	"github.com/agbru/fibhost/internal/format"
	"github.com/agbru/fibhost/internal/ui"
)

// LoadFunc resolves a builtin variant by name.
type LoadFunc func(variant string) (fibonacci.Library, error)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Variant is the name of the initially loaded library.
	Variant string
	// Factory lists the variants available to "use" and "compare".
	Factory *fibonacci.Factory
	// Load switches libraries; nil disables the "use" command.
	Load LoadFunc
}

// REPL is an interactive shell over a loaded library.
type REPL struct {
	config  REPLConfig
	lib     fibonacci.Library
	variant string
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a REPL calling lib.
func NewREPL(lib fibonacci.Library, config REPLConfig) *REPL {
	if config.Factory == nil {
		config.Factory = fibonacci.GlobalFactory()
	}
	return &REPL{
		config:  config,
		lib:     lib,
		variant: config.Variant,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads commands until "exit" or EOF. It returns the first fatal
// error, which is a library flush failure.
func (r *REPL) Start() error {
	r.printHelp()
	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"fib> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if line := strings.TrimSpace(input); line != "" {
			cont, cmdErr := r.processCommand(line)
			if cmdErr != nil {
				return cmdErr
			}
			if !cont {
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return nil
		}
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfib <n>%s        - Call Fib(n) on the loaded library\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sprint <n>%s      - Call PrintFib(n) on the loaded library\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sversion%s        - Show the library version\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %suse <variant>%s  - Load another builtin variant (%s)\n", ui.ColorYellow(), ui.ColorReset(),
		strings.Join(r.config.Factory.List(), ", "))
	fmt.Fprintf(r.out, "  %scompare <n>%s    - Compare every builtin variant at n\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s           - List builtin variants\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s           - Leave the shell\n", ui.ColorYellow(), ui.ColorReset())
}

// processCommand executes one command. It returns false when the shell
// should exit.
func (r *REPL) processCommand(input string) (bool, error) {
	parts := strings.Fields(input)
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "fib", "f":
		if n, ok := r.parseIndex(args); ok {
			r.callFib(n)
		}
	case "print", "p":
		if n, ok := r.parseIndex(args); ok {
			return true, r.lib.PrintFib(n)
		}
	case "version", "v":
		fmt.Fprintf(r.out, "%s v%d\n", r.displayName(), r.lib.Version())
	case "use", "u":
		r.cmdUse(args)
	case "compare", "cmp":
		if n, ok := r.parseIndex(args); ok {
			r.cmdCompare(n)
		}
	case "list", "ls":
		PrintVariantList(r.out, r.config.Factory.GetAll())
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintln(r.out, "Goodbye!")
		return false, nil
	default:
		if n, err := strconv.ParseInt(cmd, 10, 64); err == nil {
			r.callFib(n)
			return true, nil
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
	}
	return true, nil
}

func (r *REPL) parseIndex(args []string) (int64, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sMissing index%s\n", ui.ColorRed(), ui.ColorReset())
		return 0, false
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || n < 0 {
		fmt.Fprintf(r.out, "%sInvalid index: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return 0, false
	}
	return n, true
}

func (r *REPL) callFib(n int64) {
	start := time.Now()
	v := r.lib.Fib(n)
	fmt.Fprintf(r.out, "fib(%d) = %d  %s(%s)%s\n", n, v, ui.ColorGrey(), format.FormatExecutionDuration(time.Since(start)), ui.ColorReset())
	if fibonacci.Overflows(n) {
		fmt.Fprintf(r.out, "%swarning: fib(%d) does not fit in int64, the value wrapped%s\n", ui.ColorYellow(), n, ui.ColorReset())
	}
}

func (r *REPL) cmdUse(args []string) {
	if r.config.Load == nil {
		fmt.Fprintf(r.out, "%sThe loaded library cannot be switched%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: use <variant>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	lib, err := r.config.Load(strings.ToLower(args[0]))
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.lib, r.variant = lib, strings.ToLower(args[0])
	fmt.Fprintf(r.out, "Loaded %s%s%s v%d\n", ui.ColorGreen(), r.variant, ui.ColorReset(), lib.Version())
}

func (r *REPL) cmdCompare(n int64) {
	if n > fibonacci.MaxExactIndex {
		fmt.Fprintf(r.out, "%scompare is limited to indices up to %d%s\n",
			ui.ColorRed(), fibonacci.MaxExactIndex, ui.ColorReset())
		return
	}
	if n > fibonacci.RecursiveTractableIndex+10 {
		fmt.Fprintf(r.out, "%sskipping exponential variants above index %d%s\n",
			ui.ColorYellow(), fibonacci.RecursiveTractableIndex+10, ui.ColorReset())
	}
	want := fibonacci.ExpectedInt64(uint64(n))
	for _, alg := range r.config.Factory.GetAll() {
		if n > fibonacci.RecursiveTractableIndex+10 && fibonacci.IsExponential(alg) {
			continue
		}
		start := time.Now()
		got := alg.Fib(n)
		status := ui.ColorGreen() + "ok" + ui.ColorReset()
		switch {
		case got != want && n > fibonacci.ExactBound(alg):
			status = ui.ColorYellow() + "inexact" + ui.ColorReset()
		case got != want:
			status = ui.ColorRed() + "MISMATCH" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %-10s %d  %s  %s\n", alg.Name(), got, format.FormatExecutionDuration(time.Since(start)), status)
	}
}

func (r *REPL) displayName() string {
	if r.variant == "" {
		return "library"
	}
	return r.variant
}
