package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/jade/internal/builder"
	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/ctxlog"
	"github.com/vk/jade/internal/fsutil"
	"github.com/vk/jade/internal/step"
)

// discover resolves the configured target into build file locations. Any
// error here fails the whole run.
func (a *App) discover(ctx context.Context) ([]fsutil.Resource, error) {
	logger := ctxlog.FromContext(ctx)

	resourcesDir, err := fsutil.FindResourcesDir(a.cfg.Root)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resources directory found.", "path", resourcesDir)

	switch a.cfg.Target {
	case TargetAll:
		return fsutil.Enumerate(ctx, resourcesDir, a.cfg.Env)
	case TargetCurrent:
		r, err := fsutil.CurrentDir(a.cfg.Root, a.cfg.Env)
		if err != nil {
			return nil, err
		}
		return []fsutil.Resource{r}, nil
	default:
		r, err := fsutil.Lookup(ctx, resourcesDir, a.cfg.Env, a.cfg.Target)
		if err != nil {
			return nil, err
		}
		return []fsutil.Resource{r}, nil
	}
}

// load turns discovered resources into buildable ones. A resource whose
// build file cannot be loaded is reported and skipped; the number of such
// resources is returned alongside.
func (a *App) load(ctx context.Context, found []fsutil.Resource) ([]*builder.Resource, int) {
	logger := ctxlog.FromContext(ctx)
	opts := builder.Options{
		PackageManager: a.cfg.PackageManager,
		Only:           a.cfg.Only,
		Runner:         a.runner,
	}

	var (
		resources []*builder.Resource
		failed    int
	)
	for _, r := range found {
		steps, err := a.loadSteps(ctx, r, opts)
		if err != nil {
			failed++
			logger.Warn(fmt.Sprintf("Failed to parse build file for resource '%s'", r.Name), "error", err)
			continue
		}
		if len(a.cfg.Only) > 0 && len(steps) == 0 {
			logger.Debug("No steps left after filtering, skipping.", ctxlog.ResourceKey, r.Name)
			continue
		}
		resources = append(resources, builder.NewResource(r.Name, r.Dir, steps))
	}
	return resources, failed
}

func (a *App) loadSteps(ctx context.Context, r fsutil.Resource, opts builder.Options) ([]step.Step, error) {
	ext := strings.ToLower(filepath.Ext(r.BuildFile))
	loader, ok := a.loaders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported build file %s", config.ErrInvalidConfig, r.BuildFile)
	}

	model, err := loader.Load(ctx, r.BuildFile, config.Vars{
		Env:          a.cfg.Env,
		ResourceName: r.Name,
		ResourcePath: r.Dir,
	})
	if err != nil {
		return nil, err
	}
	return builder.Steps(model, opts)
}
