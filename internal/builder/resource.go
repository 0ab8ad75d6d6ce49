package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/jade/internal/ctxlog"
	"github.com/vk/jade/internal/step"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vk/jade/internal/builder"

// Resource is a named buildable unit: an ordered step list and the base path
// its relative paths resolve against.
type Resource struct {
	Name     string
	BasePath string
	Steps    []step.Step
}

// NewResource creates a resource. The step slice is copied.
func NewResource(name, basePath string, steps []step.Step) *Resource {
	return &Resource{Name: name, BasePath: basePath, Steps: append([]step.Step(nil), steps...)}
}

// Build runs every step in declared order. A failed step is recorded and the
// remaining steps still run; nothing is retried.
func (r *Resource) Build(ctx context.Context) *Report {
	ctx, logger := ctxlog.With(ctx, ctxlog.ResourceKey, r.Name)

	tracer := trace.SpanFromContext(ctx).TracerProvider().Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "resource "+r.Name, trace.WithAttributes(
		attribute.String("jade.resource.name", r.Name),
		attribute.Int("jade.resource.steps", len(r.Steps)),
		attribute.Int("jade.resource.leaf_steps", countLeaves(r.Steps)),
	))
	defer span.End()

	report := &Report{Resource: r.Name}
	start := time.Now()
	logger.Info("Starting build")

	if len(r.Steps) == 0 {
		logger.Warn("Build config does not contain any build steps!")
	}

	for _, s := range r.Steps {
		stepStart := time.Now()
		err := step.Run(ctx, s, r.BasePath)
		report.Steps = append(report.Steps, StepResult{
			Name:    s.Name(),
			Kind:    s.Kind(),
			Err:     err,
			Elapsed: time.Since(stepStart),
		})
	}
	report.Elapsed = time.Since(start)

	if !report.OK() {
		failed := len(report.Failures())
		span.RecordError(report.Err())
		span.SetStatus(codes.Error, fmt.Sprintf("%d failed steps", failed))
		logger.Warn(fmt.Sprintf("Built with %d failed step(s) in %.2fs", failed, report.Elapsed.Seconds()))
		return report
	}
	ctxlog.OK(logger, fmt.Sprintf("Built successfully in %.2fs", report.Elapsed.Seconds()))
	return report
}

// countLeaves counts the steps that do work, looking through parallel groups.
func countLeaves(steps []step.Step) int {
	n := 0
	for _, s := range steps {
		if group, ok := s.(*step.Parallel); ok {
			n += countLeaves(group.Steps())
			continue
		}
		n++
	}
	return n
}
