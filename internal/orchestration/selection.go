package orchestration

import (
	"strings"

	"github.com/agbru/fibhost/internal/fibonacci"
)

// SelectVariants determines which variants a comparison runs. "all" selects
// every registered variant in registry name order; any other value selects
// the single named variant, or none if it is unknown.
func SelectVariants(name string, factory *fibonacci.Factory) []fibonacci.Algorithm {
	if strings.EqualFold(name, "all") {
		keys := factory.List()
		algs := make([]fibonacci.Algorithm, 0, len(keys))
		for _, k := range keys {
			if alg, err := factory.Get(k); err == nil {
				algs = append(algs, alg)
			}
		}
		return algs
	}
	if alg, err := factory.Get(name); err == nil {
		return []fibonacci.Algorithm{alg}
	}
	return nil
}
