// Package fibonacci defines the library contract the host calls through
// (Version, Fib, PrintFib) and the interchangeable variants that implement
// it. Variants share the contract and differ only in algorithm: naive and
// guarded recursion, iteration, a bottom-up table, matrix powers and the
// closed form.
//
// A Module binds an Algorithm to a label and an output; it is the value the
// host receives from the loader when the builtin backend is selected.
package fibonacci
