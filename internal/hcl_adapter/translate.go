// This file translates decoded HCL blocks into the format-agnostic
// configuration model defined in the config package.

package hcl_adapter

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/ctxlog"
)

// decodeSteps reads the step blocks of body in source order. Diagnostics of
// every block are collected so a single load reports all problems.
func (l *Loader) decodeSteps(ctx context.Context, blocks hcl.Blocks, evalCtx *hcl.EvalContext) ([]*config.Step, hcl.Diagnostics) {
	var (
		steps []*config.Step
		diags hcl.Diagnostics
	)
	for _, block := range blocks {
		s, blockDiags := l.decodeStep(ctx, block, evalCtx)
		diags = append(diags, blockDiags...)
		if s != nil {
			steps = append(steps, s)
		}
	}
	return steps, diags
}

func (l *Loader) decodeStep(ctx context.Context, block *hcl.Block, evalCtx *hcl.EvalContext) (*config.Step, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding HCL block.", "type", block.Type, "labels", block.Labels, "range", block.DefRange.String())

	switch block.Type {
	case "js_build":
		var b JSBuild
		diags := gohcl.DecodeBody(block.Body, evalCtx, &b)
		if diags.HasErrors() {
			return nil, diags
		}
		return l.translateJSBuild(ctx, block, &b, evalCtx)

	case "bundle":
		var b Bundle
		if diags := gohcl.DecodeBody(block.Body, evalCtx, &b); diags.HasErrors() {
			return nil, diags
		}
		return &config.Step{
			Kind: config.KindBundle,
			Name: block.Labels[0],
			Bundle: &config.Bundle{
				Entrypoint: b.Entrypoint,
				SourceDir:  b.SourceDir,
				Output:     b.Output,
				Encrypt:    b.Encrypt,
			},
		}, nil

	case "manifest":
		var m Manifest
		if diags := gohcl.DecodeBody(block.Body, evalCtx, &m); diags.HasErrors() {
			return nil, diags
		}
		return &config.Step{Kind: config.KindManifest, Manifest: translateManifest(&m)}, nil

	case "parallel":
		return l.decodeParallel(ctx, block, evalCtx)
	}

	// Unreachable: Content rejects block types outside the schema.
	return nil, hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Unsupported block type",
		Subject:  block.DefRange.Ptr(),
	}}
}

func (l *Loader) translateJSBuild(ctx context.Context, block *hcl.Block, b *JSBuild, evalCtx *hcl.EvalContext) (*config.Step, hcl.Diagnostics) {
	install, diags := optionalBool(ctx, b.InstallPackages, "install_packages", evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}

	timeout, err := config.ParseTimeout(b.Timeout)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid timeout",
			Detail:   err.Error(),
			Subject:  block.DefRange.Ptr(),
		}}
	}

	return &config.Step{
		Kind: config.KindJSBuild,
		Name: block.Labels[0],
		JSBuild: &config.JSBuild{
			Folder:          b.Folder,
			BuildScript:     b.BuildScript,
			PackageManager:  b.PackageManager,
			InstallPackages: install,
			Timeout:         timeout,
		},
	}, nil
}

func (l *Loader) decodeParallel(ctx context.Context, block *hcl.Block, evalCtx *hcl.EvalContext) (*config.Step, hcl.Diagnostics) {
	content, diags := block.Body.Content(parallelSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	s := &config.Step{Kind: config.KindParallel}
	if attr, ok := content.Attributes["name"]; ok {
		if diags := gohcl.DecodeExpression(attr.Expr, evalCtx, &s.Name); diags.HasErrors() {
			return nil, diags
		}
	}

	children, diags := l.decodeSteps(ctx, content.Blocks, evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	s.Parallel = children
	return s, nil
}

func translateManifest(m *Manifest) *config.Manifest {
	return &config.Manifest{
		FxVersion:     m.FxVersion,
		Game:          m.Game,
		Author:        m.Author,
		Description:   m.Description,
		Version:       m.Version,
		ClientScripts: m.ClientScripts,
		ServerScripts: m.ServerScripts,
		SharedScripts: m.SharedScripts,
		Files:         m.Files,
		Dependencies:  m.Dependencies,
		UIPage:        m.UIPage,
		LoadScreen:    m.LoadScreen,
		IsAMap:        m.IsAMap,
		Lua54:         m.Lua54,
		RDR3Warning:   m.RDR3Warning,
	}
}
