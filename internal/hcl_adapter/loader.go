package hcl_adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses one jade.hcl file and translates its step blocks, in source
// order, into the agnostic model.
func (l *Loader) Load(ctx context.Context, path string, vars config.Vars) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build file: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL file %s: %w", config.ErrInvalidConfig, path, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL file %s: %w", config.ErrInvalidConfig, path, diags)
	}

	steps, diags := l.decodeSteps(ctx, content.Blocks, evalContext(vars))
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL file %s: %w", config.ErrInvalidConfig, path, diags)
	}

	model := &config.Model{Source: path, Steps: steps}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("HCL loading complete.", "path", path, "steps", config.Count(model.Steps))
	return model, nil
}
