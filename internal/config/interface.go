package config

import (
	"context"
	"errors"
)

// ErrInvalidConfig marks a build file that could be read but whose content
// does not describe a valid list of build steps.
var ErrInvalidConfig = errors.New("invalid build config")

// Vars are the values a loader may expose to expressions in a build file.
type Vars struct {
	// Env is the environment tag selected on the command line, or empty.
	Env string
	// ResourceName is the name of the resource being loaded.
	ResourceName string
	// ResourcePath is the resource's base directory.
	ResourcePath string
}

// Loader is the interface for a format-specific build file loader.
type Loader interface {
	// Load reads the build file at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string, vars Vars) (*Model, error)
}
