// Package loader resolves the library ABI (Version, Fib, PrintFib) and hands
// the host a fibonacci.Library.
//
// Three backends are available. The builtin backend selects a compiled-in
// variant from the registry. The plugin backend opens a Go plugin built with
// -buildmode=plugin and looks the symbols up by name. The script backend
// interprets a Go source file with yaegi and evaluates the same names in the
// file's package.
package loader
