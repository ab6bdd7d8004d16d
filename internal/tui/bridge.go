package tui

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibhost/internal/fibonacci"
	"github.com/agbru/fibhost/internal/host"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
	sink    func(tea.Msg) // test hook, used when program is nil
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p, sink := r.program, r.sink
	r.mu.RUnlock()
	switch {
	case p != nil:
		p.Send(msg)
	case sink != nil:
		sink(msg)
	}
}

// callObserver forwards host events to the dashboard.
type callObserver struct {
	ref *programRef
	now func() time.Time
}

var _ host.Observer = (*callObserver)(nil)

func (o *callObserver) Observe(ev host.Event) {
	o.ref.Send(CallMsg{Event: ev, At: o.now()})
}

// lineSink is the shared host/library Output in dashboard mode. Writes are
// buffered; Flush sends every complete line as an OutputMsg. A trailing
// partial line stays buffered until the next Flush.
type lineSink struct {
	ref *programRef
	now func() time.Time
	mu  sync.Mutex
	buf bytes.Buffer
}

var _ fibonacci.Output = (*lineSink)(nil)

func newLineSink(ref *programRef) *lineSink {
	return &lineSink{ref: ref, now: time.Now}
}

func (s *lineSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *lineSink) Flush() error {
	s.mu.Lock()
	data := s.buf.Bytes()
	last := bytes.LastIndexByte(data, '\n')
	if last < 0 {
		s.mu.Unlock()
		return nil
	}
	complete := string(data[:last])
	s.buf.Next(last + 1)
	s.mu.Unlock()

	at := s.now()
	for _, line := range strings.Split(complete, "\n") {
		s.ref.Send(OutputMsg{Line: line, At: at})
	}
	return nil
}

// pauseFunc announces the pause to the dashboard before sleeping.
func pauseFunc(ref *programRef) host.PauseFunc {
	return func(ctx context.Context, d time.Duration) error {
		ref.Send(PauseMsg{Until: time.Now().Add(d)})
		return host.Sleep(ctx, d)
	}
}
