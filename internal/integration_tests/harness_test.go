package integration_tests

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/jade/internal/app"
	"github.com/vk/jade/internal/cli"
	"github.com/vk/jade/internal/testutil"
)

// recordingRunner stands in for the package manager.
type recordingRunner struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (r *recordingRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	call := filepath.Base(dir) + ": " + name + " " + strings.Join(args, " ")
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
	if err, ok := r.fail[call]; ok {
		return []byte("npm ERR! " + err.Error() + "\n"), err
	}
	return nil, nil
}

// Result holds the outcome of one end-to-end build.
type Result struct {
	Err       error
	LogOutput string
	Root      string
	Runner    *recordingRunner
}

// ReadOutput returns a file below the resources root.
func (r *Result) ReadOutput(t *testing.T, name string) string {
	t.Helper()
	return testutil.ReadFile(t, r.Root, name)
}

// runBuild writes files below a fresh "resources" directory, parses args
// like the command line does and runs the build with a recording runner.
func runBuild(t *testing.T, files map[string]string, runner *recordingRunner, args ...string) *Result {
	t.Helper()

	root := filepath.Join(t.TempDir(), "resources")
	require.NoError(t, os.MkdirAll(root, 0o755))
	testutil.WriteFiles(t, root, files)

	if runner == nil {
		runner = &recordingRunner{}
	}

	out := &testutil.SafeBuffer{}
	cfg, exit, err := cli.Parse(append([]string{"--root", root, "--no-logo"}, args...), out)
	require.NoError(t, err)
	require.False(t, exit)

	logs := &testutil.SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv("JADE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	jade := app.NewApp(out, cfg, app.WithLogger(logger), app.WithRunner(runner))
	runErr := jade.Run(context.Background())

	return &Result{Err: runErr, LogOutput: logs.String(), Root: root, Runner: runner}
}
