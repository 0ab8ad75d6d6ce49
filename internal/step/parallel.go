package step

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/ctxlog"
	"go.uber.org/multierr"
)

// DefaultParallelName is the display name of an unnamed parallel group.
const DefaultParallelName = "parallel"

// Parallel runs its children concurrently as one logical step. Every child
// runs to completion regardless of sibling failures; Build returns once all
// of them have finished.
type Parallel struct {
	name  string
	steps []Step
}

// NewParallel creates a group over steps. The slice is copied.
func NewParallel(name string, steps []Step) *Parallel {
	if name == "" {
		name = DefaultParallelName
	}
	return &Parallel{name: name, steps: append([]Step(nil), steps...)}
}

func (p *Parallel) Name() string          { return p.name }
func (p *Parallel) Kind() config.StepKind { return config.KindParallel }

// Steps returns the group's children in declared order.
func (p *Parallel) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// Build spawns one goroutine per child, each invoked with the same base
// path, and waits for all of them. It returns a *GroupError listing every
// failed child, or nil when all succeeded.
func (p *Parallel) Build(ctx context.Context, basePath string) error {
	logger := ctxlog.FromContext(ctx)
	if len(p.steps) == 0 {
		logger.Debug("Parallel group is empty.")
		return nil
	}
	logger.Debug("Starting parallel group.", "children", len(p.steps))

	errs := make([]error, len(p.steps))
	var wg sync.WaitGroup
	wg.Add(len(p.steps))
	for i, s := range p.steps {
		i, s := i, s
		go func() {
			defer wg.Done()
			errs[i] = Run(ctx, s, basePath)
		}()
	}
	wg.Wait()

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &GroupError{Name: p.name, Total: len(p.steps), Errs: failed}
}

// GroupError reports the failed children of a parallel group.
type GroupError struct {
	Name  string
	Total int
	Errs  []error
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("parallel group %q: %d of %d steps failed: %v", e.Name, len(e.Errs), e.Total, multierr.Combine(e.Errs...))
}

func (e *GroupError) Unwrap() []error {
	return e.Errs
}

// Failures flattens err into the leaf step failures it represents,
// descending into nested parallel groups.
func Failures(err error) []error {
	if err == nil {
		return nil
	}
	if g, ok := err.(*GroupError); ok {
		var leaves []error
		for _, child := range g.Errs {
			leaves = append(leaves, Failures(child)...)
		}
		return leaves
	}
	return multierr.Errors(err)
}
