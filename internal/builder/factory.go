package builder

import (
	"fmt"

	"github.com/vk/jade/internal/bundler"
	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/jsbuild"
	"github.com/vk/jade/internal/manifest"
	"github.com/vk/jade/internal/step"
)

// Options tune how configuration is turned into steps.
type Options struct {
	// PackageManager is the default for JS steps that do not name one.
	PackageManager string
	// Only restricts execution to these leaf kinds. Empty means all kinds.
	Only []config.StepKind
	// Runner executes package manager commands. Nil selects real subprocesses.
	Runner jsbuild.Runner
}

// Steps converts the model's step list into executable steps, applying the
// Only filter.
func Steps(model *config.Model, opts Options) ([]step.Step, error) {
	steps, err := newSteps(Filter(model.Steps, opts.Only), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", model.Source, err)
	}
	return steps, nil
}

func newSteps(list []*config.Step, opts Options) ([]step.Step, error) {
	steps := make([]step.Step, 0, len(list))
	for _, s := range list {
		built, err := newStep(s, opts)
		if err != nil {
			return nil, err
		}
		steps = append(steps, built)
	}
	return steps, nil
}

func newStep(s *config.Step, opts Options) (step.Step, error) {
	switch s.Kind {
	case config.KindJSBuild:
		if s.JSBuild == nil {
			return nil, fmt.Errorf("%w: js_build step %q has no settings", config.ErrInvalidConfig, s.Name)
		}
		return jsbuild.NewStep(s.Name, s.JSBuild, opts.PackageManager, opts.Runner), nil
	case config.KindBundle:
		if s.Bundle == nil {
			return nil, fmt.Errorf("%w: bundle step %q has no settings", config.ErrInvalidConfig, s.Name)
		}
		return bundler.NewStep(s.Name, s.Bundle), nil
	case config.KindManifest:
		if s.Manifest == nil {
			return nil, fmt.Errorf("%w: manifest step has no settings", config.ErrInvalidConfig)
		}
		return manifest.NewStep(s.Name, s.Manifest), nil
	case config.KindParallel:
		children, err := newSteps(s.Parallel, opts)
		if err != nil {
			return nil, err
		}
		return step.NewParallel(s.Name, children), nil
	default:
		return nil, fmt.Errorf("%w: unknown step kind %q", config.ErrInvalidConfig, s.Kind)
	}
}

// Filter keeps the leaf steps whose kind is listed in only, descending into
// parallel groups. Groups left without children are dropped. An empty only
// keeps everything.
func Filter(list []*config.Step, only []config.StepKind) []*config.Step {
	if len(only) == 0 {
		return list
	}
	keep := make(map[config.StepKind]bool, len(only))
	for _, k := range only {
		keep[k] = true
	}
	return filter(list, keep)
}

func filter(list []*config.Step, keep map[config.StepKind]bool) []*config.Step {
	var out []*config.Step
	for _, s := range list {
		if s.Kind == config.KindParallel {
			children := filter(s.Parallel, keep)
			if len(children) == 0 {
				continue
			}
			group := *s
			group.Parallel = children
			out = append(out, &group)
			continue
		}
		if keep[s.Kind] {
			out = append(out, s)
		}
	}
	return out
}
