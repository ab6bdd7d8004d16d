package host

import (
	"context"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
)

const (
	// DefaultCount is the number of loop iterations.
	DefaultCount = 3
	// DefaultOffset is added to the loop index before calling PrintFib.
	DefaultOffset int64 = 21
	// DefaultDelay is the pause before every iteration but the first.
	DefaultDelay = 10 * time.Second
	// LastValidMarker is printed after the host line of the last index whose
	// value fits in an int64.
	LastValidMarker = "(last valid number)"
)

// PauseFunc blocks for d or until ctx is done.
type PauseFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default PauseFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Driver runs the host loop against a Library.
type Driver struct {
	lib       fibonacci.Library
	out       fibonacci.Output
	count     int
	offset    int64
	delay     time.Duration
	banner    string
	measure   bool
	markLast  bool
	pause     PauseFunc
	observers []Observer
	now       func() time.Time
}

// Option configures a Driver.
type Option func(*Driver)

// WithCount sets the number of iterations.
func WithCount(n int) Option { return func(d *Driver) { d.count = n } }

// WithOffset sets the index offset used for PrintFib.
func WithOffset(off int64) Option { return func(d *Driver) { d.offset = off } }

// WithDelay sets the pause between iterations.
func WithDelay(delay time.Duration) Option { return func(d *Driver) { d.delay = delay } }

// WithBanner prints "[<label> main]" before the loop.
func WithBanner(label string) Option { return func(d *Driver) { d.banner = label } }

// WithMeasure appends the Fib call duration to every host line.
func WithMeasure(on bool) Option { return func(d *Driver) { d.measure = on } }

// WithMarkLastValid prints LastValidMarker at fibonacci.MaxExactIndex.
func WithMarkLastValid(on bool) Option { return func(d *Driver) { d.markLast = on } }

// WithPause replaces the pause implementation.
func WithPause(p PauseFunc) Option { return func(d *Driver) { d.pause = p } }

// WithObserver registers an observer for call events.
func WithObserver(o Observer) Option {
	return func(d *Driver) {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
}

// WithClock replaces time.Now for duration measurement.
func WithClock(now func() time.Time) Option { return func(d *Driver) { d.now = now } }

// New creates a Driver for lib writing to out. When out is not already a
// fibonacci.Output it is wrapped in one; callers sharing the Output with the
// library must pass the same value to both.
func New(lib fibonacci.Library, out io.Writer, opts ...Option) *Driver {
	d := &Driver{
		lib:    lib,
		out:    fibonacci.NewOutput(out),
		count:  DefaultCount,
		offset: DefaultOffset,
		delay:  DefaultDelay,
		pause:  Sleep,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes the loop. It returns a *apperrors.FlushError when the host
// output cannot be flushed, the library's PrintFib error, or ctx.Err() when
// cancelled.
func (d *Driver) Run(ctx context.Context) error {
	if d.banner != "" {
		if _, err := fmt.Fprintf(d.out, "[%s main]\n", d.banner); err != nil {
			return &apperrors.FlushError{Site: "host", Cause: err}
		}
	}

	for i := 0; i < d.count; i++ {
		idx := int64(i)
		if i != 0 {
			if err := d.pause(ctx, d.delay); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		start := d.now()
		value := d.lib.Fib(idx)
		elapsed := d.now().Sub(start)
		d.notify(Event{Op: OpFib, Index: idx, Value: value, Duration: elapsed})

		if err := d.writeHostLine(idx, value, elapsed); err != nil {
			return err
		}

		start = d.now()
		err := d.lib.PrintFib(d.offset + idx)
		d.notify(Event{Op: OpPrintFib, Index: d.offset + idx, Duration: d.now().Sub(start), Err: err})
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) writeHostLine(idx, value int64, elapsed time.Duration) error {
	line := fibonacci.FormatHostLine(idx, value)
	if d.measure {
		line = FormatMeasuredLine(idx, value, elapsed)
	}
	if d.markLast && idx == fibonacci.MaxExactIndex {
		line += LastValidMarker + "\n"
	}
	if _, err := io.WriteString(d.out, line); err != nil {
		return &apperrors.FlushError{Site: "host", Cause: err}
	}
	if err := d.out.Flush(); err != nil {
		return &apperrors.FlushError{Site: "host", Cause: err}
	}
	return nil
}

func (d *Driver) notify(ev Event) {
	for _, o := range d.observers {
		o.Observe(ev)
	}
}

// FormatMeasuredLine renders a host line with the call duration, as in
// "fib(40) = 102334155 (in 0.412345s)".
func FormatMeasuredLine(n, value int64, elapsed time.Duration) string {
	us := elapsed.Microseconds()
	return fmt.Sprintf("fib(%d) = %d (in %d.%06ds)\n", n, value, us/1_000_000, us%1_000_000)
}
