// Package jsbuild implements the build step that installs and builds a
// JavaScript subproject through an external package manager.
package jsbuild

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/ctxlog"
	"github.com/vk/jade/internal/step"
)

// DefaultPackageManager is used when neither the build file nor the command
// line names one.
const DefaultPackageManager = "npm"

// outputTailLines bounds how much subprocess output is quoted in an error.
const outputTailLines = 10

// Runner executes a command inside dir and returns its combined output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands as real subprocesses.
type ExecRunner struct{}

// Run implements Runner. The process is killed when ctx is done.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Step runs "<pm> install" (optionally) and "<pm> run <script>" in a folder.
type Step struct {
	name           string
	folder         string
	packageManager string
	buildScript    string
	install        bool
	timeout        time.Duration
	runner         Runner
}

// NewStep creates a JS build step. defaultPM applies when cfg names no
// package manager; a nil runner selects ExecRunner.
func NewStep(name string, cfg *config.JSBuild, defaultPM string, runner Runner) *Step {
	pm := cfg.PackageManager
	if pm == "" {
		pm = defaultPM
	}
	if pm == "" {
		pm = DefaultPackageManager
	}
	install := true
	if cfg.InstallPackages != nil {
		install = *cfg.InstallPackages
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Step{
		name:           name,
		folder:         cfg.Folder,
		packageManager: pm,
		buildScript:    cfg.BuildScript,
		install:        install,
		timeout:        cfg.Timeout,
		runner:         runner,
	}
}

func (s *Step) Name() string          { return s.name }
func (s *Step) Kind() config.StepKind { return config.KindJSBuild }

// Build runs the install and build invocations in order. A failed install
// skips the build script.
func (s *Step) Build(ctx context.Context, basePath string) error {
	logger := ctxlog.FromContext(ctx)

	dir := step.ResolvePath(basePath, s.folder)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("js build folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("js build folder %s is not a directory", dir)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if s.install {
		logger.Info(fmt.Sprintf("Installing dependencies with %s", s.packageManager))
		if err := s.invoke(ctx, dir, "install"); err != nil {
			return fmt.Errorf("failed to install dependencies with %s: %w", s.packageManager, err)
		}
	}

	logger.Info(fmt.Sprintf("Running \"%s\" with %s", s.buildScript, s.packageManager))
	if err := s.invoke(ctx, dir, "run", s.buildScript); err != nil {
		return fmt.Errorf("failed to run \"%s\" with %s: %w", s.buildScript, s.packageManager, err)
	}
	return nil
}

func (s *Step) invoke(ctx context.Context, dir string, args ...string) error {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	out, err := s.runner.Run(ctx, dir, s.packageManager, args...)
	logger.Debug("Package manager finished.",
		"command", s.packageManager+" "+strings.Join(args, " "),
		"elapsed", time.Since(start),
		"output", string(out),
	)
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s: %w", s.timeout, err)
	}
	if tail := lastLines(string(out), outputTailLines); tail != "" {
		return fmt.Errorf("%w\n%s", err, tail)
	}
	return err
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\r\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
