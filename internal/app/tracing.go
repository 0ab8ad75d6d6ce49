package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/vk/jade/internal/app"

// newTracerProvider returns a provider that reports every finished span as a
// log line, or a no-op provider when tracing is off.
func newTracerProvider(enabled bool, logger *slog.Logger) trace.TracerProvider {
	if !enabled {
		return noop.NewTracerProvider()
	}
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(&logSpanProcessor{logger: logger}))
}

// logSpanProcessor writes span timings to the run's logger.
type logSpanProcessor struct {
	logger *slog.Logger
}

func (p *logSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *logSpanProcessor) OnEnd(span sdktrace.ReadOnlySpan) {
	elapsed := span.EndTime().Sub(span.StartTime())
	args := []any{
		"trace_id", span.SpanContext().TraceID().String(),
		"span_id", span.SpanContext().SpanID().String(),
		"elapsed", fmt.Sprintf("%.3fs", elapsed.Seconds()),
	}
	if span.Parent().IsValid() {
		args = append(args, "parent_id", span.Parent().SpanID().String())
	}
	if status := span.Status(); status.Code == codes.Error {
		args = append(args, "error", status.Description)
	}
	p.logger.Info("Span "+span.Name(), args...)
}

func (p *logSpanProcessor) Shutdown(context.Context) error {
	return nil
}

func (p *logSpanProcessor) ForceFlush(context.Context) error {
	return nil
}

// shutdownTracerProvider flushes an SDK provider. Other providers need no
// shutdown.
func shutdownTracerProvider(ctx context.Context, tp trace.TracerProvider) error {
	if sdk, ok := tp.(*sdktrace.TracerProvider); ok {
		return sdk.Shutdown(ctx)
	}
	return nil
}
