package fibonacci

import "math"

// Naive is unguarded double recursion: F(n) = n for n < 2.
// Negative indices return themselves.
type Naive struct{}

func (Naive) Name() string       { return "naive" }
func (Naive) Version() uint16    { return VersionNaive }
func (Naive) Complexity() string { return "O(2^n)" }
func (Naive) Exponential() bool  { return true }

func (v Naive) Fib(n int64) int64 {
	if n < 2 {
		return n
	}
	return v.Fib(n-1) + v.Fib(n-2)
}

// Recursive is double recursion with a guard for negative indices.
// Exponential time, only suitable for small indices.
type Recursive struct{}

func (Recursive) Name() string       { return "recursive" }
func (Recursive) Version() uint16    { return VersionRecursive }
func (Recursive) Complexity() string { return "O(2^n)" }
func (Recursive) Exponential() bool  { return true }

func (v Recursive) Fib(n int64) int64 {
	switch {
	case n < 0:
		return 0
	case n < 2:
		return n
	}
	return v.Fib(n-1) + v.Fib(n-2)
}

// Iterative accumulates two rolling values. The result is seeded with the
// index and the loop runs exactly n-1 times, so it is skipped for n <= 1 and
// the index itself is returned.
type Iterative struct{}

func (Iterative) Name() string       { return "iterative" }
func (Iterative) Version() uint16    { return VersionIterative }
func (Iterative) Complexity() string { return "O(n)" }

func (Iterative) Fib(n int64) int64 {
	var l, p int64 = 0, 1
	r := n
	for i := int64(1); i < n; i++ {
		r = l + p
		l = p
		p = r
	}
	return r
}

// Table fills a table bottom-up. The table stops at the first index that
// no longer fits in an int64; larger indices continue from its last two
// entries with wrapping addition.
type Table struct{}

func (Table) Name() string       { return "table" }
func (Table) Version() uint16    { return VersionTable }
func (Table) Complexity() string { return "O(n)" }

func (Table) Fib(n int64) int64 {
	if n < 2 {
		return n
	}
	var f [MaxExactIndex + 1]int64
	f[1] = 1
	top := min(n, MaxExactIndex)
	for i := int64(2); i <= top; i++ {
		f[i] = f[i-1] + f[i-2]
	}
	if n == top {
		return f[n]
	}
	a, b := f[MaxExactIndex-1], f[MaxExactIndex]
	for i := int64(MaxExactIndex); i < n; i++ {
		a, b = b, a+b
	}
	return b
}

// Matrix raises [[1 1] [1 0]] to the power n-1 by repeated squaring.
type Matrix struct{}

func (Matrix) Name() string       { return "matrix" }
func (Matrix) Version() uint16    { return VersionMatrix }
func (Matrix) Complexity() string { return "O(log n)" }

func (Matrix) Fib(n int64) int64 {
	if n < 2 {
		return n
	}
	f := [4]int64{1, 1, 1, 0}
	matrixPower(&f, n-1)
	return f[0]
}

var fibQ = [4]int64{1, 1, 1, 0}

func matrixMultiply(f *[4]int64, m *[4]int64) {
	a := f[0]*m[0] + f[1]*m[2]
	b := f[0]*m[1] + f[1]*m[3]
	c := f[2]*m[0] + f[3]*m[2]
	d := f[2]*m[1] + f[3]*m[3]
	f[0], f[1], f[2], f[3] = a, b, c, d
}

// matrixPower leaves Q^n in f, which must hold Q on entry.
func matrixPower(f *[4]int64, n int64) {
	if n <= 1 {
		return
	}
	matrixPower(f, n/2)
	sq := *f
	matrixMultiply(f, &sq)
	if n%2 != 0 {
		matrixMultiply(f, &fibQ)
	}
}

// Binet evaluates the closed form phi^n / sqrt(5) in float64.
// Values are exact up to BinetExactIndex and approximate beyond it.
type Binet struct{}

func (Binet) Name() string       { return "binet" }
func (Binet) Version() uint16    { return VersionBinet }
func (Binet) Complexity() string { return "O(1)" }
func (Binet) ExactBound() int64  { return BinetExactIndex }

func (Binet) Fib(n int64) int64 {
	if n < 2 {
		return n
	}
	phi := (1 + math.Sqrt(5)) / 2
	r := math.Pow(phi, float64(n)) / math.Sqrt(5)
	if n <= BinetExactIndex {
		return int64(math.Round(r))
	}
	if r >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(r))
}
