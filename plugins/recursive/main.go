// Command recursive is the recursive Fibonacci library built as a Go plugin:
//
//	go build -buildmode=plugin -o librecursive.so ./plugins/recursive
package main

import (
	"bufio"
	"fmt"
	"os"
)

// Version is a variable so that plugin.Lookup can resolve it.
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
	w := bufio.NewWriter(os.Stdout)
	fmt.Fprintf(w, "[Go Fibonacci Library v%d] fib(%d) = %d\n", Version, value, fibalgo(value))
	if err := w.Flush(); err != nil {
		panic(fmt.Sprintf("Unable to flush stdout: %v", err))
	}
}

func main() {}
