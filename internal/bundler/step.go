package bundler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/ctxlog"
	"github.com/vk/jade/internal/step"
)

// Step bundles one entrypoint into one output file. Relative paths are
// resolved against the base path passed to Build.
type Step struct {
	name       string
	entrypoint string
	sourceDir  string
	output     string
	encrypt    bool
}

// NewStep creates a bundle step. Entrypoint and output receive ModuleExt
// when they carry no extension.
func NewStep(name string, cfg *config.Bundle) *Step {
	return &Step{
		name:       name,
		entrypoint: withExt(cfg.Entrypoint),
		sourceDir:  cfg.SourceDir,
		output:     withExt(cfg.Output),
		encrypt:    cfg.Encrypt,
	}
}

func (s *Step) Name() string          { return s.name }
func (s *Step) Kind() config.StepKind { return config.KindBundle }

// Build resolves the whole module graph before touching the output file, so
// a missing module leaves no partial bundle behind.
func (s *Step) Build(ctx context.Context, basePath string) error {
	logger := ctxlog.FromContext(ctx)
	entrypoint := step.ResolvePath(basePath, s.entrypoint)
	sourceDir := step.ResolvePath(basePath, s.sourceDir)
	output := step.ResolvePath(basePath, s.output)

	logger.Info(fmt.Sprintf("Bundling '%s'", s.name))
	if s.encrypt {
		logger.Warn("Bundle encryption is not supported, writing a plain bundle.")
	}

	graph, err := Resolve(ctx, entrypoint, sourceDir)
	if err != nil {
		return fmt.Errorf("bundling '%s': %w", s.name, err)
	}

	var buf bytes.Buffer
	if err := Emit(&buf, graph); err != nil {
		return fmt.Errorf("bundling '%s': %w", s.name, err)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("bundling '%s': creating output directory: %w", s.name, err)
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("bundling '%s': writing output: %w", s.name, err)
	}

	logger.Debug("Bundle written.", "output", output, "modules", len(graph.Modules), "bytes", buf.Len())
	return nil
}

func withExt(p string) string {
	if p == "" || filepath.Ext(p) != "" {
		return p
	}
	return p + ModuleExt
}
