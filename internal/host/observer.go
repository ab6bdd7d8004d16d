package host

import "time"

// Op identifies a library call.
type Op string

const (
	OpFib      Op = "fib"
	OpPrintFib Op = "printfib"
)

// Event describes one completed library call. Value is only set for OpFib.
type Event struct {
	Op       Op
	Index    int64
	Value    int64
	Duration time.Duration
	Err      error
}

// Observer receives call events synchronously from the driver loop.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(ev).
func (f ObserverFunc) Observe(ev Event) { f(ev) }

// NullObserver discards events.
type NullObserver struct{}

// Observe does nothing.
func (NullObserver) Observe(Event) {}
