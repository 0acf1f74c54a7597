package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const rpcScopeName = "inkwell/rpc"

// Procedures records a span and inkwell.rpc.* metrics for every RPC call.
type Procedures struct {
	tracer trace.Tracer
	calls  metric.Int64Counter
	dur    metric.Float64Histogram
	errs   metric.Int64Counter
}

// NewProcedures builds procedure instrumentation on the global providers.
// Call after Init.
func NewProcedures() *Procedures {
	return newProcedures(Tracer(rpcScopeName), Meter(rpcScopeName))
}

func newProcedures(tracer trace.Tracer, m metric.Meter) *Procedures {
	calls, _ := m.Int64Counter("inkwell.rpc.calls",
		metric.WithDescription("Total RPC procedure calls"),
	)
	dur, _ := m.Float64Histogram("inkwell.rpc.duration",
		metric.WithDescription("RPC procedure duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	errs, _ := m.Int64Counter("inkwell.rpc.errors",
		metric.WithDescription("Total RPC procedure failures"),
	)
	return &Procedures{tracer: tracer, calls: calls, dur: dur, errs: errs}
}

// Start opens a span for procedure name of the given kind ("query" or
// "mutation"). The returned function must be called exactly once with the
// procedure's error.
func (p *Procedures) Start(ctx context.Context, name, kind string) (context.Context, func(error)) {
	attrs := metric.WithAttributes(
		attribute.String("rpc.procedure", name),
		attribute.String("rpc.kind", kind),
	)
	ctx, span := p.tracer.Start(ctx, "rpc."+name,
		trace.WithAttributes(
			attribute.String("rpc.procedure", name),
			attribute.String("rpc.kind", kind),
		),
		trace.WithSpanKind(trace.SpanKindServer),
	)
	p.calls.Add(ctx, 1, attrs)
	start := time.Now()

	return ctx, func(err error) {
		p.dur.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			p.errs.Add(ctx, 1, attrs)
		}
		span.End()
	}
}
