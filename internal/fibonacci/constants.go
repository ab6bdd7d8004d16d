package fibonacci

const (
	// MaxExactIndex is the largest index whose Fibonacci value fits in an
	// int64. F(93) wraps around.
	MaxExactIndex = 92

	// BinetExactIndex is the largest index for which the float64 closed form
	// rounds to the exact value.
	BinetExactIndex = 70

	// RecursiveTractableIndex bounds the indices for which the exponential
	// variants complete in well under a second.
	RecursiveTractableIndex = 30

	// DefaultLabel is the language tag printed by PrintFib.
	DefaultLabel = "Go"
)

// Variant versions. They are diagnostic only and never drive branching.
const (
	VersionNaive     uint16 = 0
	VersionRecursive uint16 = 1
	VersionIterative uint16 = 2
	VersionTable     uint16 = 3
	VersionMatrix    uint16 = 4
	VersionBinet     uint16 = 5
)
