package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/ctxlog"
	"github.com/vk/jade/internal/hcl_adapter"
	"github.com/vk/jade/internal/jsbuild"
	"github.com/vk/jade/internal/yaml_adapter"
	"go.opentelemetry.io/otel/trace"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	cfg     *Config
	loaders map[string]config.Loader
	runner  jsbuild.Runner
	tracing trace.TracerProvider
}

// Option customizes an App.
type Option func(*App)

// WithRunner replaces the package manager command runner.
func WithRunner(r jsbuild.Runner) Option {
	return func(a *App) { a.runner = r }
}

// WithTracerProvider replaces the provider selected by Config.Trace.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *App) { a.tracing = tp }
}

// WithLogger replaces the logger built from the configured level and format.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	a := &App{
		outW: outW,
		cfg:  cfg,
		loaders: map[string]config.Loader{
			".hcl":  hcl_adapter.NewLoader(),
			".yaml": yaml_adapter.NewLoader(),
			".yml":  yaml_adapter.NewLoader(),
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	}
	if a.runner == nil {
		a.runner = jsbuild.ExecRunner{}
	}
	if a.tracing == nil {
		a.tracing = newTracerProvider(cfg.Trace, a.logger)
	}
	a.logger.Debug("Logger configured successfully.")
	return a
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
