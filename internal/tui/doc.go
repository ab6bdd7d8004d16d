// Package tui implements the interactive dashboard mode. It runs the host
// loop in the background and shows host and library output, call timings and
// process statistics side by side.
package tui
