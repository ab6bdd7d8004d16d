package orchestration

import (
	"io"
	"sync"
	"time"
)

// ComparisonResult is the outcome of running one variant over an index range.
// It serves as the shared domain type between orchestration and presentation layers.
type ComparisonResult struct {
	// Name is the registry name of the variant (e.g., "iterative").
	Name string
	// Version is the variant's version tag.
	Version uint16
	// Values holds F(0)..F(len-1) as returned by the variant. It is shorter
	// than requested when the run was interrupted.
	Values []int64
	// Duration is the total time spent in Fib calls.
	Duration time.Duration
	// Err is set when the run did not complete.
	Err error
}

// Mismatch records the first index at which a variant disagreed with the
// exact reference value.
type Mismatch struct {
	Variant string
	Index   int64
	Got     int64
	Want    int64
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	// MaxIndex is the highest index that was compared.
	MaxIndex int64
	// Verbose lists every compared value of the fastest variant.
	Verbose bool
}

// ProgressUpdate reports how far a variant got through the index range.
type ProgressUpdate struct {
	// VariantIndex identifies the variant in the slice passed to
	// ExecuteComparison.
	VariantIndex int
	// Value is the completed fraction, from 0.0 to 1.0.
	Value float64
}

// ProgressReporter defines the interface for displaying comparison progress.
// Implementations handle the visual representation of progress (spinners,
// progress bars, etc.) while the orchestration layer focuses on coordinating
// the runs.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numVariants int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numVariants int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numVariants int, out io.Writer) {
	f(wg, progressChan, numVariants, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting comparison results.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []ComparisonResult, out io.Writer)
	// PresentMismatches lists the variants that disagreed with the reference.
	PresentMismatches(mismatches []Mismatch, out io.Writer)
	// PresentResult displays the values computed by the fastest variant.
	PresentResult(result ComparisonResult, opts PresentationOptions, out io.Writer)
}
