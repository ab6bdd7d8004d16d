package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fibhost/internal/config"
	"github.com/agbru/fibhost/internal/fibonacci"
	"github.com/agbru/fibhost/internal/ui"
)

// PrintExecutionConfig describes the selected library and loop parameters.
// It writes to the diagnostic stream, never to the host output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	target := cfg.Variant
	if cfg.Backend != config.DefaultBackend {
		target = cfg.Path
	}
	fmt.Fprintf(out, "Library: %s%s%s via the %s%s%s backend.\n",
		ui.ColorMagenta(), target, ui.ColorReset(), ui.ColorCyan(), cfg.Backend, ui.ColorReset())
	if cfg.Compare {
		fmt.Fprintf(out, "Comparing indices %s0..%d%s.\n", ui.ColorYellow(), cfg.CompareMax, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Loop: %s%d%s iterations, printfib offset %s%d%s, delay %s%s%s.\n",
			ui.ColorYellow(), cfg.Count, ui.ColorReset(),
			ui.ColorYellow(), cfg.Offset, ui.ColorReset(),
			ui.ColorYellow(), cfg.Delay, ui.ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintVariantList writes one line per registered variant.
func PrintVariantList(out io.Writer, algs []fibonacci.Algorithm) {
	fmt.Fprintf(out, "%sAvailable variants:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, alg := range algs {
		d := fibonacci.Describe(alg)
		fmt.Fprintf(out, "  %s%-10s%s v%d  %s\n", ui.ColorGreen(), d.Name, ui.ColorReset(), d.Version, d.Complexity)
	}
}
