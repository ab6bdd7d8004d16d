// Command iterative is the iterative Fibonacci library built as a Go plugin:
//
//	go build -buildmode=plugin -o libiterative.so ./plugins/iterative
package main

import (
	"bufio"
	"fmt"
	"os"
)

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
	w := bufio.NewWriter(os.Stdout)
	fmt.Fprintf(w, "[Go Fibonacci Library v%d] fib(%d) = %d\n", Version, value, fibalgo(value))
	if err := w.Flush(); err != nil {
		panic(fmt.Sprintf("Unable to flush stdout: %v", err))
	}
}

func main() {}
