package config

import (
	"runtime"

	"github.com/agbru/fibhost/internal/fibonacci"
)

// Compare limit resolution chain (highest priority first):
//   1. CLI flag (-compare-max)
//   2. Environment variable (FIBHOST_COMPARE_MAX)
//   3. Per-variant estimation (this file)

// ApplyCompareLimit fills CompareMax when it is left at zero, picking the
// largest index every selected variant can both compute exactly and finish
// in reasonable time.
func ApplyCompareLimit(cfg AppConfig, algs []fibonacci.Algorithm) AppConfig {
	if cfg.CompareMax != 0 {
		return cfg
	}
	limit := int64(fibonacci.MaxExactIndex)
	for _, alg := range algs {
		limit = min(limit, fibonacci.ExactBound(alg))
		if fibonacci.IsExponential(alg) {
			limit = min(limit, EstimateRecursiveLimit())
		}
	}
	cfg.CompareMax = limit
	return cfg
}

// EstimateRecursiveLimit provides a heuristic upper index for the
// exponential variants. Each step up roughly multiplies the call count by
// 1.6, so the limit only moves a few indices with the core count.
func EstimateRecursiveLimit() int64 {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return fibonacci.RecursiveTractableIndex - 4
	case numCPU <= 8:
		return fibonacci.RecursiveTractableIndex
	default:
		return fibonacci.RecursiveTractableIndex + 2
	}
}
