package bundler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/vk/jade/internal/ctxlog"
)

// ModuleExt is the file extension of every bundled module.
const ModuleExt = ".lua"

const moduleSeparator = "."

// ErrModuleNotFound is returned when a required module has no file under the
// source root.
var ErrModuleNotFound = errors.New("module not found")

var requirePattern = regexp.MustCompile(`require\("([^"]+)"\)`)

// Node is one source module, identified by its resolved file path. Its
// content is read on demand.
type Node struct {
	Path string
}

// Contents reads the module's source text.
func (n *Node) Contents() ([]byte, error) {
	data, err := os.ReadFile(n.Path)
	if err != nil {
		return nil, fmt.Errorf("reading module %s: %w", n.Path, err)
	}
	return data, nil
}

// Graph is the set of modules reachable from an entrypoint. The entry module
// is kept apart from Modules and is never registered as a module itself.
type Graph struct {
	Main    *Node
	Modules map[string]*Node
}

// IDs returns the module ids in sorted order.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.Modules))
	for id := range g.Modules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ModulePath maps a module id to its file under sourceDir: dots become path
// separators and ModuleExt is appended.
func ModulePath(sourceDir, id string) string {
	rel := strings.ReplaceAll(id, moduleSeparator, "/")
	return filepath.Join(sourceDir, filepath.FromSlash(rel)) + ModuleExt
}

// Requires returns the module ids required by src, in order of appearance
// and including repeats.
func Requires(src []byte) []string {
	matches := requirePattern.FindAllSubmatch(src, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, string(m[1]))
	}
	return ids
}

// Resolve discovers the transitive closure of modules required from
// entrypoint. A required id whose file does not exist aborts resolution with
// ErrModuleNotFound.
func Resolve(ctx context.Context, entrypoint, sourceDir string) (*Graph, error) {
	g := &Graph{
		Main:    &Node{Path: entrypoint},
		Modules: make(map[string]*Node),
	}
	if err := g.scan(ctx, g.Main, sourceDir); err != nil {
		return nil, err
	}
	return g, nil
}

// scan inserts every not-yet-known module required by node and recurses into
// it. A module is inserted before it is scanned, so a module that is still
// being processed higher up the stack is skipped like a finished one.
func (g *Graph) scan(ctx context.Context, node *Node, sourceDir string) error {
	logger := ctxlog.FromContext(ctx)

	src, err := node.Contents()
	if err != nil {
		return err
	}

	for _, id := range Requires(src) {
		if _, seen := g.Modules[id]; seen {
			logger.Debug("Module already resolved, skipping.", "module", id, "from", node.Path)
			continue
		}

		path := ModulePath(sourceDir, id)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return fmt.Errorf("%w: %s (%s)", ErrModuleNotFound, id, path)
		}

		dep := &Node{Path: path}
		g.Modules[id] = dep
		logger.Debug("Resolved module.", "module", id, "path", path)

		if err := g.scan(ctx, dep, sourceDir); err != nil {
			return err
		}
	}
	return nil
}
