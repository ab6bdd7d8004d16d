package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/agbru/fibhost/internal/host"
)

type recorder struct {
	noop.TracerProvider
	mu    sync.Mutex
	spans []*recordedSpan
}

func (r *recorder) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return recordingTracer{r: r}
}

type recordingTracer struct {
	noop.Tracer
	r *recorder
}

func (t recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{name: name, attrs: cfg.Attributes(), start: cfg.Timestamp()}
	t.r.mu.Lock()
	t.r.spans = append(t.r.spans, s)
	t.r.mu.Unlock()
	return ctx, s
}

type recordedSpan struct {
	noop.Span
	name   string
	attrs  []attribute.KeyValue
	start  time.Time
	end    time.Time
	status codes.Code
	err    error
	ended  bool
}

func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) { s.err = err }
func (s *recordedSpan) SetStatus(c codes.Code, _ string)              { s.status = c }
func (s *recordedSpan) End(opts ...trace.SpanEndOption) {
	s.ended = true
	cfg := trace.NewSpanEndConfig(opts...)
	s.end = cfg.Timestamp()
}

func (s *recordedSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestObserverRecordsSpans(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	obs := NewObserver(context.Background(), rec)
	fixed := time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)
	obs.now = func() time.Time { return fixed }

	obs.Observe(host.Event{Op: host.OpFib, Index: 10, Value: 55, Duration: time.Millisecond})
	obs.Observe(host.Event{Op: host.OpPrintFib, Index: 31, Err: errors.New("boom")})

	if len(rec.spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(rec.spans))
	}

	fib := rec.spans[0]
	if fib.name != "library.fib" || !fib.ended || fib.status != codes.Ok {
		t.Errorf("unexpected fib span: %+v", fib)
	}
	if v, ok := fib.attr("fibhost.value"); !ok || v.AsInt64() != 55 {
		t.Errorf("fibhost.value = %v, %v", v, ok)
	}
	if got := fib.end.Sub(fib.start); got != time.Millisecond {
		t.Errorf("span duration = %s, want 1ms", got)
	}

	pf := rec.spans[1]
	if pf.name != "library.printfib" || pf.status != codes.Error || pf.err == nil {
		t.Errorf("unexpected printfib span: %+v", pf)
	}
	if _, ok := pf.attr("fibhost.value"); ok {
		t.Error("printfib span should not carry a value")
	}
}

func TestStartRun(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	_, end := StartRun(context.Background(), rec, RunInfo{Backend: "builtin", Variant: "iterative", Version: 2})
	end(nil)

	if len(rec.spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(rec.spans))
	}
	s := rec.spans[0]
	if s.name != "host.run" || !s.ended {
		t.Errorf("unexpected run span: %+v", s)
	}
	if v, _ := s.attr("fibhost.version"); v.AsInt64() != 2 {
		t.Errorf("fibhost.version = %v", v)
	}
}

func TestNilProviderUsesGlobal(t *testing.T) {
	t.Parallel()
	obs := NewObserver(context.Background(), nil)
	obs.Observe(host.Event{Op: host.OpFib, Index: 1, Value: 1})
	_, end := StartRun(context.Background(), nil, RunInfo{})
	end(errors.New("ignored"))
}
