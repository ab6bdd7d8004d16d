package fibonacci

import (
	"fmt"
	"os"
)

// ExampleNewModule shows the line a library prints for the host.
func ExampleNewModule() {
	lib := NewModule(Iterative{}, WithOutput(os.Stdout))
	fmt.Println(lib.Fib(10))
	_ = lib.PrintFib(21)
	// Output:
	// 55
	// [Go Fibonacci Library v2] fib(21) = 10946
}

// ExampleFactory_List lists the builtin variants.
func ExampleFactory_List() {
	f := NewDefaultFactory()
	fmt.Println(f.List())
	for _, alg := range f.GetAll() {
		fmt.Printf("v%d %-9s %s\n", alg.Version(), alg.Name(), alg.Complexity())
	}
	// Output:
	// [binet iterative matrix naive recursive table]
	// v0 naive     O(2^n)
	// v1 recursive O(2^n)
	// v2 iterative O(n)
	// v3 table     O(n)
	// v4 matrix    O(log n)
	// v5 binet     O(1)
}
