package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// Step blocks may appear at the top level of a build file and inside a
// parallel block. Their order is significant, so bodies are read with
// Content and each block is decoded individually.
var stepBlocks = []hcl.BlockHeaderSchema{
	{Type: "js_build", LabelNames: []string{"name"}},
	{Type: "bundle", LabelNames: []string{"name"}},
	{Type: "manifest"},
	{Type: "parallel"},
}

var fileSchema = &hcl.BodySchema{Blocks: stepBlocks}

var parallelSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "name"}},
	Blocks:     stepBlocks,
}

// JSBuild is the body of a `js_build "<name>" {}` block.
type JSBuild struct {
	Folder         string `hcl:"folder"`
	BuildScript    string `hcl:"build_script"`
	PackageManager string `hcl:"package_manager,optional"`
	// InstallPackages stays an expression so an omitted attribute can be
	// told apart from an explicit false.
	InstallPackages hcl.Expression `hcl:"install_packages,optional"`
	Timeout         string         `hcl:"timeout,optional"`
}

// Bundle is the body of a `bundle "<name>" {}` block.
type Bundle struct {
	Entrypoint string `hcl:"entrypoint"`
	SourceDir  string `hcl:"source_dir"`
	Output     string `hcl:"output"`
	Encrypt    bool   `hcl:"encrypt,optional"`
}

// Manifest is the body of a `manifest {}` block.
type Manifest struct {
	FxVersion     string   `hcl:"fx_version"`
	Game          string   `hcl:"game"`
	Author        string   `hcl:"author,optional"`
	Description   string   `hcl:"description,optional"`
	Version       string   `hcl:"version,optional"`
	ClientScripts []string `hcl:"client_scripts,optional"`
	ServerScripts []string `hcl:"server_scripts,optional"`
	SharedScripts []string `hcl:"shared_scripts,optional"`
	Files         []string `hcl:"files,optional"`
	Dependencies  []string `hcl:"dependencies,optional"`
	UIPage        string   `hcl:"ui_page,optional"`
	LoadScreen    string   `hcl:"loadscreen,optional"`
	IsAMap        bool     `hcl:"is_a_map,optional"`
	Lua54         bool     `hcl:"lua54,optional"`
	RDR3Warning   string   `hcl:"rdr3_warning,optional"`
}
