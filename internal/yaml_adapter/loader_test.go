package yaml_adapter

import (
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/testutil"
)

func load(t *testing.T, src string, vars config.Vars) (*config.Model, error) {
	t.Helper()
	ctx, _ := testutil.LogContext(t)
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"jade.yaml": src})
	return NewLoader().Load(ctx, filepath.Join(dir, "jade.yaml"), vars)
}

func TestLoad(t *testing.T) {
	model, err := load(t, `
steps:
  - js_build:
      name: ui
      folder: web
      build_script: build
      install_packages: false
      timeout: 90s
  - parallel:
      name: bundles
      steps:
        - bundle:
            name: client
            entrypoint: client/main
            source_dir: client
            output: dist/${env}/client
        - bundle:
            name: server
            entrypoint: server/main
            source_dir: server
            output: dist/${env}/server
  - manifest:
      fx_version: cerulean
      game: gta5
      description: ${resource.name} ${unknown}
      files:
        - web/dist/index.html
      is_a_map: true
`, config.Vars{Env: "prod", ResourceName: "garage"})
	require.NoError(t, err)

	require.Len(t, model.Steps, 3)
	js := model.Steps[0].JSBuild
	require.NotNil(t, js)
	assert.Equal(t, "ui", model.Steps[0].Name)
	require.NotNil(t, js.InstallPackages)
	assert.False(t, *js.InstallPackages)
	assert.Equal(t, 90*time.Second, js.Timeout)

	group := model.Steps[1]
	assert.Equal(t, config.KindParallel, group.Kind)
	assert.Equal(t, "bundles", group.Name)
	require.Len(t, group.Parallel, 2)
	assert.Equal(t, "dist/prod/client", group.Parallel[0].Bundle.Output)
	assert.Equal(t, "server", group.Parallel[1].Name)

	m := model.Steps[2].Manifest
	assert.Equal(t, "garage ${unknown}", m.Description)
	assert.Equal(t, []string{"web/dist/index.html"}, m.Files)
	assert.True(t, m.IsAMap)
}

func TestLoadPlaceholderValuesAreNotParsed(t *testing.T) {
	model, err := load(t, `
steps:
  - bundle:
      entrypoint: main
      source_dir: src
      output: ${resource.path}/dist/client
  - manifest:
      fx_version: cerulean
      game: gta5
      description: built from ${resource.name}
      client_scripts:
        - ${resource.path}/client.lua
`, config.Vars{ResourceName: "a: b", ResourcePath: "/srv/my #1 res"})
	require.NoError(t, err)

	require.Len(t, model.Steps, 2)
	assert.Equal(t, "/srv/my #1 res/dist/client", model.Steps[0].Bundle.Output)
	m := model.Steps[1].Manifest
	assert.Equal(t, "built from a: b", m.Description)
	assert.Equal(t, []string{"/srv/my #1 res/client.lua"}, m.ClientScripts)
}

func TestLoadEmptyFile(t *testing.T) {
	model, err := load(t, "", config.Vars{})
	require.NoError(t, err)
	assert.Empty(t, model.Steps)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown key",
			src:  "steps:\n  - bundle:\n      name: x\n      entry: main\n",
			want: "field entry not found",
		},
		{
			name: "two kinds in one entry",
			src:  "steps:\n  - bundle: {name: x}\n    manifest: {game: gta5}\n",
			want: "found 2",
		},
		{
			name: "empty entry",
			src:  "steps:\n  - {}\n",
			want: "found 0",
		},
		{
			name: "missing field",
			src:  "steps:\n  - manifest: {game: gta5}\n",
			want: `"fx_version" is required`,
		},
		{
			name: "bad timeout",
			src:  "steps:\n  - js_build: {name: ui, folder: web, build_script: build, timeout: soon}\n",
			want: `timeout "soon"`,
		},
		{
			name: "nested entry",
			src:  "steps:\n  - parallel:\n      steps:\n        - {}\n",
			want: "steps[0].steps[0]",
		},
		{
			name: "not a mapping",
			src:  "- a\n- b\n",
			want: "failed to parse YAML file",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(t, tc.src, config.Vars{})
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	_, err := NewLoader().Load(ctx, filepath.Join(t.TempDir(), "jade.yaml"), config.Vars{})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
