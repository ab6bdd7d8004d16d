package orchestration

import (
	"time"
)

// ProgressAggregator merges per-variant progress into one average with an
// ETA. Both the CLI and the TUI consume it.
type ProgressAggregator struct {
	progresses  []float64
	numVariants int
	startTime   time.Time
	now         func() time.Time
}

// NewProgressAggregator creates a new aggregator for the given number of
// variants. Returns nil if numVariants <= 0.
func NewProgressAggregator(numVariants int) *ProgressAggregator {
	if numVariants <= 0 {
		return nil
	}
	return &ProgressAggregator{
		progresses:  make([]float64, numVariants),
		numVariants: numVariants,
		startTime:   time.Now(),
		now:         time.Now,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// VariantIndex is the index of the variant that sent the update.
	VariantIndex int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the aggregated average across all variants.
	AverageProgress float64
	// ETA is the estimated time remaining, zero until progress is reported.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
// Updates with an out-of-range index are ignored.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	if update.VariantIndex >= 0 && update.VariantIndex < len(a.progresses) {
		a.progresses[update.VariantIndex] = update.Value
	}
	return AggregatedProgress{
		VariantIndex:    update.VariantIndex,
		Value:           update.Value,
		AverageProgress: a.CalculateAverage(),
		ETA:             a.GetETA(),
	}
}

// CalculateAverage returns the current average progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	var total float64
	for _, p := range a.progresses {
		total += p
	}
	return total / float64(a.numVariants)
}

// GetETA extrapolates the remaining time from the average progress rate.
func (a *ProgressAggregator) GetETA() time.Duration {
	avg := a.CalculateAverage()
	if avg <= 0 || avg >= 1 {
		return 0
	}
	elapsed := a.now().Sub(a.startTime)
	return time.Duration(float64(elapsed) * (1 - avg) / avg)
}

// NumVariants returns the number of variants being tracked.
func (a *ProgressAggregator) NumVariants() int {
	return a.numVariants
}

// IsMultiVariant returns true if tracking more than one variant.
func (a *ProgressAggregator) IsMultiVariant() bool {
	return a.numVariants > 1
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
