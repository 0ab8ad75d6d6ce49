package builder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/step"
)

func sampleModel() *config.Model {
	return &config.Model{
		Source: "jade.hcl",
		Steps: []*config.Step{
			{Kind: config.KindJSBuild, Name: "ui", JSBuild: &config.JSBuild{Folder: "web", BuildScript: "build", Timeout: time.Minute}},
			{Kind: config.KindParallel, Name: "bundles", Parallel: []*config.Step{
				{Kind: config.KindBundle, Name: "client", Bundle: &config.Bundle{Entrypoint: "client/main", SourceDir: "client", Output: "dist/client"}},
				{Kind: config.KindBundle, Name: "server", Bundle: &config.Bundle{Entrypoint: "server/main", SourceDir: "server", Output: "dist/server"}},
			}},
			{Kind: config.KindManifest, Name: "manifest", Manifest: &config.Manifest{FxVersion: "cerulean", Game: "gta5"}},
		},
	}
}

func TestStepsBuildsEveryKind(t *testing.T) {
	steps, err := Steps(sampleModel(), Options{PackageManager: "pnpm"})
	require.NoError(t, err)
	require.Len(t, steps, 3)

	assert.Equal(t, config.KindJSBuild, steps[0].Kind())
	assert.Equal(t, "ui", steps[0].Name())

	group, ok := steps[1].(*step.Parallel)
	require.True(t, ok)
	assert.Equal(t, "bundles", group.Name())
	children := group.Steps()
	require.Len(t, children, 2)
	assert.Equal(t, "client", children[0].Name())
	assert.Equal(t, config.KindBundle, children[1].Kind())

	assert.Equal(t, config.KindManifest, steps[2].Kind())
}

func TestStepsRejectsMalformedModel(t *testing.T) {
	testCases := []struct {
		name string
		step *config.Step
		want string
	}{
		{name: "js_build without settings", step: &config.Step{Kind: config.KindJSBuild, Name: "x"}, want: `js_build step "x" has no settings`},
		{name: "bundle without settings", step: &config.Step{Kind: config.KindBundle, Name: "y"}, want: `bundle step "y" has no settings`},
		{name: "manifest without settings", step: &config.Step{Kind: config.KindManifest}, want: "manifest step has no settings"},
		{name: "unknown kind", step: &config.Step{Kind: "deploy"}, want: `unknown step kind "deploy"`},
		{name: "nested in parallel", step: &config.Step{Kind: config.KindParallel, Parallel: []*config.Step{{Kind: "deploy"}}}, want: "unknown step kind"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Steps(&config.Model{Source: "jade.hcl", Steps: []*config.Step{tc.step}}, Options{})
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.want)
			assert.Contains(t, err.Error(), "jade.hcl")
		})
	}
}

func TestFilter(t *testing.T) {
	model := sampleModel()

	t.Run("empty filter keeps everything", func(t *testing.T) {
		assert.Equal(t, model.Steps, Filter(model.Steps, nil))
	})

	t.Run("bundle only keeps the group", func(t *testing.T) {
		got := Filter(model.Steps, []config.StepKind{config.KindBundle})
		require.Len(t, got, 1)
		assert.Equal(t, config.KindParallel, got[0].Kind)
		assert.Len(t, got[0].Parallel, 2)
	})

	t.Run("groups left empty are dropped", func(t *testing.T) {
		got := Filter(model.Steps, []config.StepKind{config.KindJSBuild, config.KindManifest})
		require.Len(t, got, 2)
		assert.Equal(t, "ui", got[0].Name)
		assert.Equal(t, config.KindManifest, got[1].Kind)
	})

	t.Run("filtering does not mutate the model", func(t *testing.T) {
		nested := &config.Step{Kind: config.KindParallel, Parallel: []*config.Step{
			{Kind: config.KindBundle, Name: "a"},
			{Kind: config.KindManifest},
		}}
		got := Filter([]*config.Step{nested}, []config.StepKind{config.KindBundle})
		require.Len(t, got, 1)
		assert.Len(t, got[0].Parallel, 1)
		assert.Len(t, nested.Parallel, 2)
	})
}
