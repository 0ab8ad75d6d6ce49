package config

import "time"

// StepKind names one of the closed set of build step variants.
type StepKind string

const (
	KindJSBuild  StepKind = "js_build"
	KindBundle   StepKind = "bundle"
	KindManifest StepKind = "manifest"
	KindParallel StepKind = "parallel"
)

// Kinds lists the leaf step kinds a run can be restricted to.
var Kinds = []StepKind{KindJSBuild, KindBundle, KindManifest}

// ParseKind validates a user-supplied leaf step kind.
func ParseKind(s string) (StepKind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Model is the unified representation of one resource build file.
type Model struct {
	// Source is the path of the build file the model was loaded from.
	Source string
	Steps  []*Step
}

// Step is one entry of an ordered step list. Exactly one of the variant
// fields is set, matching Kind.
type Step struct {
	Kind StepKind
	Name string

	JSBuild  *JSBuild
	Bundle   *Bundle
	Manifest *Manifest
	Parallel []*Step
}

// JSBuild describes a JavaScript subproject built with a package manager.
// Paths are relative to the resource directory.
type JSBuild struct {
	Folder         string
	PackageManager string // empty selects the run-wide default
	BuildScript    string
	// InstallPackages is nil when the build file does not mention it.
	InstallPackages *bool
	Timeout         time.Duration
}

// Bundle describes a script bundle. Paths are relative to the resource directory.
type Bundle struct {
	Entrypoint string
	SourceDir  string
	Output     string
	Encrypt    bool
}

// Manifest holds the fields of a generated resource manifest.
type Manifest struct {
	FxVersion     string
	Game          string
	Author        string
	Description   string
	Version       string
	ClientScripts []string
	ServerScripts []string
	SharedScripts []string
	Files         []string
	Dependencies  []string
	UIPage        string
	LoadScreen    string
	IsAMap        bool
	Lua54         bool
	RDR3Warning   string
}

// Count returns the number of leaf steps in the list, descending into
// parallel groups.
func Count(steps []*Step) int {
	n := 0
	for _, s := range steps {
		if s.Kind == KindParallel {
			n += Count(s.Parallel)
			continue
		}
		n++
	}
	return n
}
