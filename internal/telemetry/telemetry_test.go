package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitDisabled(t *testing.T) {
	if err := Init(context.Background(), Options{}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Shutdown(context.Background())

	p := NewProcedures()
	_, done := p.Start(context.Background(), "post.getAll", "query")
	done(nil)
}

func TestInitEnabledWithoutExporters(t *testing.T) {
	ctx := context.Background()
	if err := Init(ctx, Options{Enabled: true, ServiceName: "inkwell-test", Version: "test"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Shutdown(ctx)
	if len(shutdownFns) != 0 {
		t.Error("Shutdown should clear registered providers")
	}
}

func newTestProcedures(t *testing.T) (*Procedures, *tracetest.SpanRecorder, *sdkmetric.ManualReader) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		tp.Shutdown(context.Background())
		mp.Shutdown(context.Background())
	})
	return newProcedures(tp.Tracer(rpcScopeName), mp.Meter(rpcScopeName)), rec, reader
}

func sumOf(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s: unexpected data type %T", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestProceduresRecordsSpans(t *testing.T) {
	p, rec, reader := newTestProcedures(t)
	ctx := context.Background()

	_, done := p.Start(ctx, "post.getAll", "query")
	done(nil)
	_, done = p.Start(ctx, "post.create", "mutation")
	done(errors.New("conflict"))

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Name() != "rpc.post.getAll" {
		t.Errorf("span name: got %q", spans[0].Name())
	}
	if spans[0].Status().Code == codes.Error {
		t.Error("successful call should not have error status")
	}
	if spans[1].Status().Code != codes.Error {
		t.Error("failed call should have error status")
	}

	if got := sumOf(t, reader, "inkwell.rpc.calls"); got != 2 {
		t.Errorf("calls: got %d, want 2", got)
	}
	if got := sumOf(t, reader, "inkwell.rpc.errors"); got != 1 {
		t.Errorf("errors: got %d, want 1", got)
	}
}
