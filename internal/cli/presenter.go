package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibhost/internal/format"
	"github.com/agbru/fibhost/internal/orchestration"
	"github.com/agbru/fibhost/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and a progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for running comparisons.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numVariants int, out io.Writer) {
	DisplayProgress(wg, progressChan, numVariants, out)
}

// DisplayProgress consumes progress updates until the channel is closed,
// refreshing the spinner suffix every ProgressRefreshRate.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numVariants int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numVariants)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(agg))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(agg))
		}
	}
}

func progressSuffix(agg *orchestration.ProgressAggregator) string {
	label := "Computing"
	if agg.IsMultiVariant() {
		label = fmt.Sprintf("Comparing %d variants", agg.NumVariants())
	}
	avg := agg.CalculateAverage()
	return fmt.Sprintf(" %s... %6.2f%% %s ETA %s", label, avg*100, progressBar(avg, ProgressBarWidth), FormatETA(agg.GetETA()))
}

// CLIResultPresenter implements orchestration.ResultPresenter for terminal
// output.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable displays variant names, versions, durations and
// status. Padding is computed on the plain text so ANSI codes do not shift
// the columns.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.ComparisonResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen, maxDurationLen := len("Variant"), len("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(displayDuration(res)))
	}

	fmt.Fprintf(out, "%sVariant%s%s   %sVersion%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Variant")),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		version := "v" + strconv.Itoa(int(res.Version))
		duration := displayDuration(res)
		fmt.Fprintf(out, "%s%s%s%s   %s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			version, padRight("", len("Version")-len(version)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

func displayDuration(res orchestration.ComparisonResult) string {
	if res.Duration == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(res.Duration)
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentMismatches lists the first divergent index of every variant.
func (CLIResultPresenter) PresentMismatches(mismatches []orchestration.Mismatch, out io.Writer) {
	fmt.Fprintf(out, "\n%sMismatches:%s\n", ui.ColorRed(), ui.ColorReset())
	for _, m := range mismatches {
		fmt.Fprintf(out, "  %s: fib(%d) = %d, expected %d\n", m.Variant, m.Index, m.Got, m.Want)
	}
}

// PresentResult shows the fastest variant and, when verbose, every value it
// computed.
func (CLIResultPresenter) PresentResult(result orchestration.ComparisonResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "Fastest variant: %s%s%s (v%d), %d indices in %s.\n",
		ui.ColorGreen(), result.Name, ui.ColorReset(), result.Version,
		opts.MaxIndex+1, format.FormatExecutionDuration(result.Duration))
	if !opts.Verbose {
		return
	}
	for n, v := range result.Values {
		fmt.Fprintf(out, "  fib(%d) = %s\n", n, format.FormatNumberString(strconv.FormatInt(v, 10)))
	}
}
