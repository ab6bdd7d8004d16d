package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibhost/internal/fibonacci"
	"github.com/agbru/fibhost/internal/host"
)

// collect returns a programRef whose messages are appended to the returned slice.
func collect() (*programRef, *[]tea.Msg, *sync.Mutex) {
	var (
		mu   sync.Mutex
		msgs []tea.Msg
	)
	ref := &programRef{sink: func(m tea.Msg) {
		mu.Lock()
		msgs = append(msgs, m)
		mu.Unlock()
	}}
	return ref, &msgs, &mu
}

func TestProgramRef_Send_NilProgram(t *testing.T) {
	t.Parallel()
	ref := &programRef{}
	ref.Send(TickMsg(time.Now())) // must not panic
}

func TestProgramRef_Send_Concurrent(t *testing.T) {
	t.Parallel()
	ref, msgs, mu := collect()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref.Send(OutputMsg{Line: fmt.Sprint(i)})
		}()
	}
	wg.Wait()
	mu.Lock()
	defer mu.Unlock()
	if len(*msgs) != 10 {
		t.Errorf("got %d messages, want 10", len(*msgs))
	}
}

func TestLineSink_FlushSendsCompleteLines(t *testing.T) {
	t.Parallel()
	ref, msgs, _ := collect()
	sink := newLineSink(ref)

	fmt.Fprint(sink, "fib(0) = 0\n[Go Fibonacci Library v2] fib(21) = 10946\npartial")
	if len(*msgs) != 0 {
		t.Fatal("nothing should be sent before Flush")
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(*msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(*msgs))
	}
	if got := (*msgs)[1].(OutputMsg).Line; got != "[Go Fibonacci Library v2] fib(21) = 10946" {
		t.Errorf("second line = %q", got)
	}

	fmt.Fprint(sink, " line\n")
	_ = sink.Flush()
	if got := (*msgs)[2].(OutputMsg).Line; got != "partial line" {
		t.Errorf("buffered partial line = %q", got)
	}
}

func TestCallObserver(t *testing.T) {
	t.Parallel()
	ref, msgs, _ := collect()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := &callObserver{ref: ref, now: func() time.Time { return at }}
	obs.Observe(host.Event{Op: host.OpFib, Index: 3, Value: 2})

	got, ok := (*msgs)[0].(CallMsg)
	if !ok || got.Event.Value != 2 || !got.At.Equal(at) {
		t.Errorf("unexpected message %#v", (*msgs)[0])
	}
}

func TestPauseFunc(t *testing.T) {
	t.Parallel()
	ref, msgs, _ := collect()
	if err := pauseFunc(ref)(context.Background(), 0); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if _, ok := (*msgs)[0].(PauseMsg); !ok {
		t.Errorf("expected PauseMsg, got %#v", (*msgs)[0])
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pauseFunc(ref)(ctx, time.Hour); err == nil {
		t.Error("cancelled pause should return an error")
	}
}

func TestStartRunCmd(t *testing.T) {
	t.Parallel()
	ref, msgs, _ := collect()
	session := Session{
		Title: "iterative (builtin)",
		Load: func(_ context.Context, out fibonacci.Output) (fibonacci.Library, error) {
			return fibonacci.NewModule(fibonacci.GlobalFactory().MustGet("iterative"), fibonacci.WithOutput(out)), nil
		},
		HostOptions: []host.Option{host.WithDelay(0)},
	}

	done, ok := startRunCmd(ref, context.Background(), session, 7)().(RunDoneMsg)
	if !ok || done.Err != nil || done.Generation != 7 {
		t.Fatalf("unexpected completion %#v", done)
	}

	var lines []string
	var calls int
	for _, m := range *msgs {
		switch m := m.(type) {
		case OutputMsg:
			lines = append(lines, m.Line)
		case CallMsg:
			calls++
		}
	}
	want := []string{
		"fib(0) = 0",
		"[Go Fibonacci Library v2] fib(21) = 10946",
		"fib(1) = 1",
		"[Go Fibonacci Library v2] fib(22) = 17711",
		"fib(2) = 1",
		"[Go Fibonacci Library v2] fib(23) = 28657",
	}
	if fmt.Sprint(lines) != fmt.Sprint(want) {
		t.Errorf("lines = %q, want %q", lines, want)
	}
	if calls != 6 {
		t.Errorf("got %d call events, want 6", calls)
	}
}

func TestStartRunCmd_LoadError(t *testing.T) {
	t.Parallel()
	ref, _, _ := collect()
	loadErr := fmt.Errorf("no such library")
	session := Session{Load: func(context.Context, fibonacci.Output) (fibonacci.Library, error) { return nil, loadErr }}

	done := startRunCmd(ref, context.Background(), session, 0)().(RunDoneMsg)
	if done.Err != loadErr {
		t.Errorf("Err = %v, want %v", done.Err, loadErr)
	}
}

func TestStartRunCmd_Instrument(t *testing.T) {
	t.Parallel()
	ref, _, _ := collect()

	var (
		loaded   uint16
		events   []host.Event
		ended    int
		endedErr error
	)
	session := testSession()
	session.Instrument = func(ctx context.Context, lib fibonacci.Library) (context.Context, []host.Observer, func(error)) {
		loaded = lib.Version()
		obs := host.ObserverFunc(func(ev host.Event) { events = append(events, ev) })
		return ctx, []host.Observer{obs}, func(err error) {
			ended++
			endedErr = err
		}
	}

	done := startRunCmd(ref, context.Background(), session, 3)().(RunDoneMsg)
	if done.Err != nil {
		t.Fatalf("run failed: %v", done.Err)
	}
	if loaded != fibonacci.VersionIterative {
		t.Errorf("Instrument saw version %d, want %d", loaded, fibonacci.VersionIterative)
	}
	if len(events) != 6 {
		t.Errorf("instrument observer got %d events, want 6", len(events))
	}
	if ended != 1 || endedErr != nil {
		t.Errorf("end called %d times with %v, want once with nil", ended, endedErr)
	}
}

func TestStartRunCmd_InstrumentContextDrivesRun(t *testing.T) {
	t.Parallel()
	ref, _, _ := collect()

	var endedErr error
	session := testSession()
	session.Instrument = func(ctx context.Context, _ fibonacci.Library) (context.Context, []host.Observer, func(error)) {
		runCtx, cancel := context.WithCancel(ctx)
		cancel()
		return runCtx, nil, func(err error) { endedErr = err }
	}

	done := startRunCmd(ref, context.Background(), session, 1)().(RunDoneMsg)
	if !errors.Is(done.Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled from the run context", done.Err)
	}
	if !errors.Is(endedErr, context.Canceled) {
		t.Errorf("end received %v, want context.Canceled", endedErr)
	}
}
