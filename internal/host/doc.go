// Package host implements the driver loop that exercises a Fibonacci
// library: it pauses between iterations, calls Fib, prints the host line,
// flushes, then asks the library to print its own line through PrintFib.
//
// The driver writes to the same buffered Output the library prints to, so
// host and library lines interleave in call order. Any flush failure is
// fatal and is returned as *apperrors.FlushError.
package host
