// Package telemetry turns host call events into OpenTelemetry spans. Without
// a configured SDK the global provider is a no-op and spans cost nothing.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/fibhost/internal/host"
)

// InstrumentationName identifies the tracer.
const InstrumentationName = "github.com/agbru/fibhost"

// RunInfo describes the library driven by a run.
type RunInfo struct {
	Backend string
	Variant string
	Path    string
	Version uint16
}

// StartRun opens the parent span of a host run. The returned function ends
// it, recording err when non-nil.
func StartRun(ctx context.Context, tp trace.TracerProvider, info RunInfo) (context.Context, func(error)) {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	ctx, span := tp.Tracer(InstrumentationName).Start(ctx, "host.run",
		trace.WithAttributes(
			attribute.String("fibhost.backend", info.Backend),
			attribute.String("fibhost.variant", info.Variant),
			attribute.String("fibhost.path", info.Path),
			attribute.Int("fibhost.version", int(info.Version)),
		))
	return ctx, func(err error) {
		finish(span, err)
		span.End()
	}
}

// Observer records one span per library call as a child of the span in ctx.
// Span start times are back-dated by the measured call duration.
type Observer struct {
	ctx    context.Context
	tracer trace.Tracer
	now    func() time.Time
}

var _ host.Observer = (*Observer)(nil)

// NewObserver creates an Observer. A nil tp uses the global provider.
func NewObserver(ctx context.Context, tp trace.TracerProvider) *Observer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Observer{ctx: ctx, tracer: tp.Tracer(InstrumentationName), now: time.Now}
}

// Observe implements host.Observer.
func (o *Observer) Observe(ev host.Event) {
	end := o.now()
	attrs := []attribute.KeyValue{
		attribute.String("fibhost.op", string(ev.Op)),
		attribute.Int64("fibhost.index", ev.Index),
	}
	if ev.Op == host.OpFib {
		attrs = append(attrs, attribute.Int64("fibhost.value", ev.Value))
	}
	_, span := o.tracer.Start(o.ctx, "library."+string(ev.Op),
		trace.WithTimestamp(end.Add(-ev.Duration)),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal))
	finish(span, ev.Err)
	span.End(trace.WithTimestamp(end))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
