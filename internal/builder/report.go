package builder

import (
	"fmt"
	"time"

	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/step"
	"go.uber.org/multierr"
)

// StepResult is the outcome of one top-level step of a resource.
type StepResult struct {
	Name    string
	Kind    config.StepKind
	Err     error
	Elapsed time.Duration
}

// Report is the outcome of one resource build.
type Report struct {
	Resource string
	Elapsed  time.Duration
	Steps    []StepResult
}

// Failures returns every leaf step failure, flattening parallel groups.
func (r *Report) Failures() []error {
	var failures []error
	for _, s := range r.Steps {
		failures = append(failures, step.Failures(s.Err)...)
	}
	return failures
}

// OK reports whether every step succeeded.
func (r *Report) OK() bool {
	return len(r.Failures()) == 0
}

// Err combines the step failures into one error, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, s := range r.Steps {
		if s.Err != nil {
			errs = append(errs, fmt.Errorf("%s/%s: %w", r.Resource, s.Name, s.Err))
		}
	}
	return multierr.Combine(errs...)
}

// Summary aggregates the reports of a run.
type Summary struct {
	Resources      int
	FailedSteps    int
	FailedResource []string
}

// Summarize counts failures across reports.
func Summarize(reports []*Report) Summary {
	sum := Summary{Resources: len(reports)}
	for _, r := range reports {
		if r.OK() {
			continue
		}
		sum.FailedSteps += len(r.Failures())
		sum.FailedResource = append(sum.FailedResource, r.Resource)
	}
	return sum
}
