package step

import (
	"context"
	"path/filepath"

	"github.com/vk/jade/internal/config"
)

// Step is a unit of build work. Implementations perform all of their side
// effects synchronously inside Build and report failure through the returned
// error. Steps are immutable after construction and safe to call from any
// goroutine.
type Step interface {
	// Name is the display name used for log and span attribution.
	Name() string
	// Kind identifies the step variant.
	Kind() config.StepKind
	// Build executes the step against the resource base path.
	Build(ctx context.Context, basePath string) error
}

// ResolvePath interprets p relative to the resource base path. Absolute
// paths are returned cleaned and unchanged otherwise.
func ResolvePath(basePath, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(basePath, p)
}
