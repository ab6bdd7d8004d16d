//go:generate mockgen -source=library.go -destination=mocks/mock_library.go -package=mocks

package fibonacci

// Library is the fixed ABI a host resolves from a computation module.
// Every variant, whether compiled in, loaded from a plugin or interpreted
// from source, is reached through this interface.
type Library interface {
	// Version identifies the active variant for diagnostic display.
	Version() uint16
	// Fib returns the n-th Fibonacci number with F(0)=0 and F(1)=1.
	Fib(n int64) int64
	// PrintFib computes F(n) and writes one tagged line, then flushes.
	// A flush failure is returned as *apperrors.FlushError.
	PrintFib(n int64) error
}

// Algorithm is the pure computation behind a builtin variant.
type Algorithm interface {
	// Name is the registry key ("recursive", "iterative", ...).
	Name() string
	// Version is the variant's version tag.
	Version() uint16
	// Complexity is a short asymptotic description, e.g. "O(n)".
	Complexity() string
	// Fib computes F(n). It must be deterministic and side-effect free.
	Fib(n int64) int64
}

// Exponential is implemented by algorithms whose cost grows exponentially
// with the index.
type Exponential interface {
	Exponential() bool
}

// Bounded is implemented by algorithms that are only exact up to an index
// below MaxExactIndex.
type Bounded interface {
	ExactBound() int64
}

// IsExponential reports whether alg declares an exponential cost.
func IsExponential(alg Algorithm) bool {
	e, ok := alg.(Exponential)
	return ok && e.Exponential()
}

// ExactBound returns the largest index alg computes exactly.
func ExactBound(alg Algorithm) int64 {
	if b, ok := alg.(Bounded); ok {
		return min(b.ExactBound(), MaxExactIndex)
	}
	return MaxExactIndex
}

// Descriptor summarizes a registered variant.
type Descriptor struct {
	Name       string
	Label      string
	Version    uint16
	Complexity string
}

// Describe returns the descriptor of an algorithm printing under
// DefaultLabel. Use (*Module).Describe for a relabelled module.
func Describe(alg Algorithm) Descriptor {
	return Descriptor{Name: alg.Name(), Label: DefaultLabel, Version: alg.Version(), Complexity: alg.Complexity()}
}
