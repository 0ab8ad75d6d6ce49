package config

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Validate checks that every step carries the fields its kind requires. All
// problems are reported together, each wrapping ErrInvalidConfig.
func (m *Model) Validate() error {
	return validateSteps(m.Steps, "")
}

func validateSteps(steps []*Step, parent string) error {
	var errs error
	for i, s := range steps {
		where := fmt.Sprintf("%ssteps[%d]", parent, i)
		if s.Name != "" {
			where = fmt.Sprintf("%s (%s %q)", where, s.Kind, s.Name)
		}
		errs = multierr.Append(errs, validateStep(s, where))
	}
	return errs
}

func validateStep(s *Step, where string) error {
	switch s.Kind {
	case KindJSBuild:
		if s.JSBuild == nil {
			return invalid(where, "missing js_build settings")
		}
		return multierr.Combine(
			required(where, "folder", s.JSBuild.Folder),
			required(where, "build_script", s.JSBuild.BuildScript),
			nonNegative(where, s.JSBuild.Timeout),
		)
	case KindBundle:
		if s.Bundle == nil {
			return invalid(where, "missing bundle settings")
		}
		return multierr.Combine(
			required(where, "entrypoint", s.Bundle.Entrypoint),
			required(where, "source_dir", s.Bundle.SourceDir),
			required(where, "output", s.Bundle.Output),
		)
	case KindManifest:
		if s.Manifest == nil {
			return invalid(where, "missing manifest settings")
		}
		return multierr.Combine(
			required(where, "fx_version", s.Manifest.FxVersion),
			required(where, "game", s.Manifest.Game),
		)
	case KindParallel:
		if len(s.Parallel) == 0 {
			return invalid(where, "parallel group has no steps")
		}
		return validateSteps(s.Parallel, where+".")
	default:
		return invalid(where, fmt.Sprintf("unknown step kind %q", s.Kind))
	}
}

func required(where, field, value string) error {
	if value == "" {
		return invalid(where, fmt.Sprintf("%q is required", field))
	}
	return nil
}

func nonNegative(where string, d time.Duration) error {
	if d < 0 {
		return invalid(where, "timeout must not be negative")
	}
	return nil
}

func invalid(where, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, where, msg)
}

// ParseTimeout parses an optional duration such as "90s" or "5m". An empty
// string means no timeout.
func ParseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidConfig, s, err)
	}
	return d, nil
}
