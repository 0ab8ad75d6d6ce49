package step

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/vk/jade/internal/ctxlog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vk/jade/internal/step"

// Run executes s at the step boundary. It scopes the context logger with the
// step name, opens a span under whatever span ctx already carries, converts a
// panic into an error and logs the outcome. The returned error is the step's
// own failure; callers decide whether to continue.
func Run(ctx context.Context, s Step, basePath string) error {
	ctx, logger := ctxlog.With(ctx, ctxlog.StepKey, s.Name())

	tracer := trace.SpanFromContext(ctx).TracerProvider().Tracer(tracerName)
	ctx, span := tracer.Start(ctx, string(s.Kind())+" "+s.Name(), trace.WithAttributes(
		attribute.String("jade.step.kind", string(s.Kind())),
		attribute.String("jade.step.name", s.Name()),
	))
	defer span.End()

	start := time.Now()
	err := build(ctx, s, basePath)
	elapsed := time.Since(start)
	if err == nil {
		logger.Debug("Step finished.", "elapsed", elapsed)
		return nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, strings.TrimSpace(err.Error()))

	var groupErr *GroupError
	if errors.As(err, &groupErr) {
		// Children already reported their own failures.
		logger.Warn(fmt.Sprintf("%d of %d parallel steps failed", len(groupErr.Errs), groupErr.Total))
		return err
	}
	logger.Error(err.Error())
	return err
}

func build(ctx context.Context, s Step, basePath string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.FromContext(ctx).Debug("Recovered step panic.", "stack", string(debug.Stack()))
			err = fmt.Errorf("step %q panicked: %v", s.Name(), r)
		}
	}()
	return s.Build(ctx, basePath)
}
