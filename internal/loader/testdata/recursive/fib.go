package fiblib

import "fmt"

var Version uint16 = 1

func fibalgo(value int64) int64 {
	if value < 0 {
		return 0
	} else if value < 2 {
		return value
	}
	return fibalgo(value-1) + fibalgo(value-2)
}

func Fib(value int64) int64 {
	return fibalgo(value)
}

func PrintFib(value int64) {
	fmt.Printf("[Go Fibonacci Library v%d] fib(%d) = %d\n", Version, value, fibalgo(value))
}
