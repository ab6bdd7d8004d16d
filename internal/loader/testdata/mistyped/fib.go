package fiblib

var Version uint16 = 7

func Fib(value int) int {
	return value
}

func PrintFib(value int64) {}
