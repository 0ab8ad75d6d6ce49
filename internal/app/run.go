package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vk/jade/internal/builder"
	"github.com/vk/jade/internal/ctxlog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrBuildFailed is returned in strict mode when any step or build file
// failed.
var ErrBuildFailed = errors.New("build failed")

// Run executes one build: discovery, loading and the concurrent build of
// every resource. Only a discovery failure, or any failure in strict mode,
// is returned as an error. The final banner is always printed once the
// build has started.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.", "target", a.cfg.Target, "root", a.cfg.Root, "env", a.cfg.Env)

	if !a.cfg.NoLogo {
		fmt.Fprint(a.outW, Logo)
	}

	defer func() {
		if err := shutdownTracerProvider(context.WithoutCancel(ctx), a.tracing); err != nil {
			logger.Debug("Tracer provider shutdown failed.", "error", err)
		}
	}()
	ctx, span := a.tracing.Tracer(tracerName).Start(ctx, "jade build")
	defer span.End()

	found, err := a.discover(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	resources, loadFailures := a.load(ctx, found)
	logger.Info(fmt.Sprintf("Found %d resource(s) to build", len(resources)))
	span.SetAttributes(attribute.Int("jade.resources", len(resources)))

	start := time.Now()
	reports := builder.BuildAll(ctx, resources, a.cfg.Workers)
	ctxlog.OK(logger, fmt.Sprintf("Build finished in %.2fs!", time.Since(start).Seconds()))

	sum := builder.Summarize(reports)
	if sum.FailedSteps == 0 && loadFailures == 0 {
		return nil
	}

	if sum.FailedSteps > 0 {
		logger.Warn(fmt.Sprintf("%d step(s) failed in %d resource(s): %s",
			sum.FailedSteps, len(sum.FailedResource), strings.Join(sum.FailedResource, ", ")))
	}
	if loadFailures > 0 {
		logger.Warn(fmt.Sprintf("%d resource(s) skipped because their build file could not be loaded", loadFailures))
	}
	span.SetStatus(codes.Error, "build finished with failures")

	if a.cfg.Strict {
		return fmt.Errorf("%w: %d failed step(s), %d unreadable build file(s)", ErrBuildFailed, sum.FailedSteps, loadFailures)
	}
	logger.Debug("App.Run method finished.")
	return nil
}
