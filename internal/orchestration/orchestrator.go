package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking variant
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteComparison runs every variant over the indices 0..maxIndex, one
// goroutine per variant. Progress updates are dropped rather than blocking
// when the reporter falls behind.
func ExecuteComparison(ctx context.Context, algs []fibonacci.Algorithm, maxIndex int64, reporter ProgressReporter, out io.Writer) []ComparisonResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]ComparisonResult, len(algs))
	progressChan := make(chan ProgressUpdate, len(algs)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(algs), out)

	for i, alg := range algs {
		idx, alg := i, alg
		g.Go(func() error {
			results[idx] = runVariant(ctx, alg, idx, maxIndex, progressChan)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func runVariant(ctx context.Context, alg fibonacci.Algorithm, idx int, maxIndex int64, progressChan chan<- ProgressUpdate) ComparisonResult {
	res := ComparisonResult{
		Name:    alg.Name(),
		Version: alg.Version(),
		Values:  make([]int64, 0, maxIndex+1),
	}
	for n := int64(0); n <= maxIndex; n++ {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		start := time.Now()
		v := alg.Fib(n)
		res.Duration += time.Since(start)
		res.Values = append(res.Values, v)

		select {
		case progressChan <- ProgressUpdate{VariantIndex: idx, Value: float64(n+1) / float64(maxIndex+1)}:
		default:
		}
	}
	return res
}

// FindMismatches checks every completed result against the exact reference
// and returns the first divergence of each variant.
func FindMismatches(results []ComparisonResult) []Mismatch {
	var mismatches []Mismatch
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		for n, got := range res.Values {
			if want := fibonacci.ExpectedInt64(uint64(n)); got != want {
				mismatches = append(mismatches, Mismatch{Variant: res.Name, Index: int64(n), Got: got, Want: want})
				break
			}
		}
	}
	return mismatches
}

// AnalyzeComparisonResults sorts the results by duration, validates them
// against each other and the reference, displays a comparative table and
// returns the matching exit code.
func AnalyzeComparisonResults(results []ComparisonResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *ComparisonResult
	var firstError error
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No variant could complete the comparison.\n")
		if firstError == nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.HandleError(firstError, out)
	}

	if mismatches := FindMismatches(results); len(mismatches) > 0 {
		presenter.PresentMismatches(mismatches, out)
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %v.\n", apperrors.ErrMismatch)
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	if firstError != nil {
		return apperrors.ExitCode(firstError)
	}
	return apperrors.ExitSuccess
}
