// Package fsutil locates the resources directory and the buildable resources
// inside it.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/jade/internal/ctxlog"
)

// ResourcesDirName is the directory name that roots a resource tree.
const ResourcesDirName = "resources"

// BuildFileName is the build file base name, without extension.
const BuildFileName = "jade"

// BuildFileExts lists the accepted build file extensions in lookup order.
var BuildFileExts = []string{".hcl", ".yaml", ".yml"}

var (
	// ErrResourcesDirNotFound means no ancestor of the start directory is
	// named ResourcesDirName.
	ErrResourcesDirNotFound = errors.New("could not find resources directory")
	// ErrResourceNotFound means the requested resource has no build file.
	ErrResourceNotFound = errors.New("could not find buildable resource")
)

// Resource is a discovered buildable directory.
type Resource struct {
	Name      string
	Dir       string
	BuildFile string
}

// FindResourcesDir walks up from start, which is made absolute first, and
// returns the nearest directory named ResourcesDirName, start included.
func FindResourcesDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if filepath.Base(dir) == ResourcesDirName {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w above %s", ErrResourcesDirNotFound, start)
		}
		dir = parent
	}
}

// BuildFileCandidates returns the build file names to try, most preferred
// first. With an env the prefixed names come before the plain ones.
func BuildFileCandidates(env string) []string {
	var names []string
	if env != "" {
		for _, ext := range BuildFileExts {
			names = append(names, env+"."+BuildFileName+ext)
		}
	}
	for _, ext := range BuildFileExts {
		names = append(names, BuildFileName+ext)
	}
	return names
}

// FindBuildFile returns the first candidate build file present in dir.
func FindBuildFile(dir, env string) (string, bool) {
	for _, name := range BuildFileCandidates(env) {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// IsContainer reports whether a directory name is a bracket-named container
// folder, e.g. "[core]". Containers are flattened during enumeration.
func IsContainer(name string) bool {
	return len(name) >= 2 && strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]")
}

// Enumerate lists every buildable resource below root in lexical walk order.
// Container folders are descended into, other directories are resources when
// they hold a build file and are never descended into. When two resources
// share a name the first one wins.
func Enumerate(ctx context.Context, root, env string) ([]Resource, error) {
	logger := ctxlog.FromContext(ctx)

	var resources []Resource
	seen := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root || !d.IsDir() {
			return nil
		}

		name := d.Name()
		if IsContainer(name) {
			return nil
		}

		buildFile, ok := FindBuildFile(path, env)
		if !ok {
			return fs.SkipDir
		}
		if first, dup := seen[name]; dup {
			logger.Warn(fmt.Sprintf("Duplicate resource '%s', skipping", name), "path", path, "kept", first)
			return fs.SkipDir
		}
		seen[name] = path
		resources = append(resources, Resource{Name: name, Dir: path, BuildFile: buildFile})
		return fs.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("enumerating resources in %s: %w", root, err)
	}
	return resources, nil
}

// Lookup finds a single resource by name below root.
func Lookup(ctx context.Context, root, env, name string) (Resource, error) {
	resources, err := Enumerate(ctx, root, env)
	if err != nil {
		return Resource{}, err
	}
	for _, r := range resources {
		if r.Name == name {
			return r, nil
		}
	}
	return Resource{}, fmt.Errorf("%w: %s", ErrResourceNotFound, name)
}

// CurrentDir treats dir itself as a resource named after its base name.
func CurrentDir(dir, env string) (Resource, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Resource{}, err
	}
	buildFile, ok := FindBuildFile(abs, env)
	if !ok {
		return Resource{}, fmt.Errorf("%w: %s", ErrResourceNotFound, abs)
	}
	return Resource{Name: filepath.Base(abs), Dir: abs, BuildFile: buildFile}, nil
}
