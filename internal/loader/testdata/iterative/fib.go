package fiblib

import "fmt"

var Version uint16 = 2

func fibalgo(value int64) int64 {
	var l, p int64 = 0, 1
	n := value
	for i := int64(1); i < value; i++ {
		n = l + p
		l = p
		p = n
	}
	return n
}

func Fib(value int64) int64 {
	return fibalgo(value)
}

func PrintFib(value int64) {
	fmt.Printf("[Go Fibonacci Library v%d] fib(%d) = %d\n", Version, value, fibalgo(value))
}
