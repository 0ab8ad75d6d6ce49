// Package manifest generates the fxmanifest.lua descriptor of a resource.
package manifest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/ctxlog"
)

// FileName is the descriptor file written into the resource directory.
const FileName = "fxmanifest.lua"

// DefaultName is the display name of a manifest step.
const DefaultName = "manifest"

// Step writes the manifest descriptor for a resource.
type Step struct {
	name string
	m    config.Manifest
}

// NewStep creates a manifest step. The descriptor is copied.
func NewStep(name string, m *config.Manifest) *Step {
	if name == "" {
		name = DefaultName
	}
	return &Step{name: name, m: *m}
}

func (s *Step) Name() string          { return s.name }
func (s *Step) Kind() config.StepKind { return config.KindManifest }

// Build renders the descriptor and writes it to <basePath>/fxmanifest.lua.
func (s *Step) Build(ctx context.Context, basePath string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Generating " + FileName)

	var sb strings.Builder
	if err := Render(&sb, &s.m); err != nil {
		return fmt.Errorf("rendering %s: %w", FileName, err)
	}

	path := filepath.Join(basePath, FileName)
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", FileName, err)
	}
	logger.Debug("Manifest written.", "path", path)
	return nil
}

// Render writes the directive lines of m. Optional directives appear only
// when their field is set.
func Render(w io.Writer, m *config.Manifest) error {
	r := &renderer{w: w}

	r.value("fx_version", m.FxVersion)
	r.value("game", m.Game)
	r.optional("author", m.Author)
	r.optional("description", m.Description)
	r.optional("version", m.Version)
	r.list("client_scripts", m.ClientScripts)
	r.list("server_scripts", m.ServerScripts)
	r.list("shared_scripts", m.SharedScripts)
	r.optional("ui_page", m.UIPage)
	r.list("files", m.Files)
	r.optional("loadscreen", m.LoadScreen)
	r.list("dependencies", m.Dependencies)
	if m.IsAMap {
		r.value("this_is_a_map", "yes")
	}
	if m.Lua54 {
		r.value("lua54", "yes")
	}
	r.optional("rdr3_warning", m.RDR3Warning)
	r.line("")

	return r.err
}

// renderer keeps the first write error and ignores later writes.
type renderer struct {
	w   io.Writer
	err error
}

func (r *renderer) line(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *renderer) value(directive, v string) {
	r.line(`%s "%s"`, directive, v)
}

func (r *renderer) optional(directive, v string) {
	if v != "" {
		r.value(directive, v)
	}
}

func (r *renderer) list(directive string, items []string) {
	if len(items) == 0 {
		return
	}
	r.line("%s {", directive)
	for _, item := range items {
		r.line(`    "%s",`, item)
	}
	r.line("}")
}
