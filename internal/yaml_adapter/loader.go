package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/ctxlog"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// varPattern matches the placeholders a YAML build file may use. Anything
// else that looks like a placeholder is left untouched.
var varPattern = regexp.MustCompile(`\$\{(env|resource\.name|resource\.path)\}`)

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a YAML build file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads one YAML build file. Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, path string, vars config.Vars) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build file: %w", err)
	}

	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to parse YAML file %s: %w", config.ErrInvalidConfig, path, err)
	}

	steps, err := translateSteps(f.Steps, "", expander(vars))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	model := &config.Model{Source: path, Steps: steps}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("YAML loading complete.", "path", path, "steps", config.Count(model.Steps))
	return model, nil
}

// expander substitutes placeholders in decoded values, so the substituted
// text never passes through the YAML parser.
func expander(vars config.Vars) func(string) string {
	return func(s string) string {
		return varPattern.ReplaceAllStringFunc(s, func(m string) string {
			switch varPattern.FindStringSubmatch(m)[1] {
			case "env":
				return vars.Env
			case "resource.name":
				return vars.ResourceName
			default:
				return vars.ResourcePath
			}
		})
	}
}

func expandAll(list []string, expand func(string) string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = expand(s)
	}
	return out
}

func translateSteps(entries []stepEntry, parent string, expand func(string) string) ([]*config.Step, error) {
	var (
		steps []*config.Step
		errs  error
	)
	for i, e := range entries {
		s, err := translateStep(e, expand)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: %ssteps[%d]: %s", config.ErrInvalidConfig, parent, i, err))
			continue
		}
		if s.Kind == config.KindParallel {
			children, err := translateSteps(e.Parallel.Steps, fmt.Sprintf("%ssteps[%d].", parent, i), expand)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			s.Parallel = children
		}
		steps = append(steps, s)
	}
	return steps, errs
}

// translateStep converts a single entry, leaving parallel children to the
// caller.
func translateStep(e stepEntry, expand func(string) string) (*config.Step, error) {
	set := 0
	for _, present := range []bool{e.JSBuild != nil, e.Bundle != nil, e.Manifest != nil, e.Parallel != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of js_build, bundle, manifest or parallel must be set, found %d", set)
	}

	switch {
	case e.JSBuild != nil:
		b := e.JSBuild
		timeout, err := config.ParseTimeout(b.Timeout)
		if err != nil {
			return nil, err
		}
		return &config.Step{
			Kind: config.KindJSBuild,
			Name: expand(b.Name),
			JSBuild: &config.JSBuild{
				Folder:          expand(b.Folder),
				BuildScript:     expand(b.BuildScript),
				PackageManager:  expand(b.PackageManager),
				InstallPackages: b.InstallPackages,
				Timeout:         timeout,
			},
		}, nil
	case e.Bundle != nil:
		b := e.Bundle
		return &config.Step{
			Kind: config.KindBundle,
			Name: expand(b.Name),
			Bundle: &config.Bundle{
				Entrypoint: expand(b.Entrypoint),
				SourceDir:  expand(b.SourceDir),
				Output:     expand(b.Output),
				Encrypt:    b.Encrypt,
			},
		}, nil
	case e.Manifest != nil:
		m := e.Manifest
		return &config.Step{
			Kind: config.KindManifest,
			Name: expand(m.Name),
			Manifest: &config.Manifest{
				FxVersion:     expand(m.FxVersion),
				Game:          expand(m.Game),
				Author:        expand(m.Author),
				Description:   expand(m.Description),
				Version:       expand(m.Version),
				ClientScripts: expandAll(m.ClientScripts, expand),
				ServerScripts: expandAll(m.ServerScripts, expand),
				SharedScripts: expandAll(m.SharedScripts, expand),
				Files:         expandAll(m.Files, expand),
				Dependencies:  expandAll(m.Dependencies, expand),
				UIPage:        expand(m.UIPage),
				LoadScreen:    expand(m.LoadScreen),
				IsAMap:        m.IsAMap,
				Lua54:         m.Lua54,
				RDR3Warning:   expand(m.RDR3Warning),
			},
		}, nil
	default:
		return &config.Step{Kind: config.KindParallel, Name: expand(e.Parallel.Name)}, nil
	}
}
