package fiblib

var Version uint16 = 9

func Fib(value int64) int64 {
	return value
}
