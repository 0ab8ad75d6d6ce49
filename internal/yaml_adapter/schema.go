package yaml_adapter

// file is the document root of a YAML build file.
type file struct {
	Steps []stepEntry `yaml:"steps"`
}

// stepEntry is one list item. Exactly one of its fields must be set.
type stepEntry struct {
	JSBuild  *jsBuild  `yaml:"js_build"`
	Bundle   *bundle   `yaml:"bundle"`
	Manifest *manifest `yaml:"manifest"`
	Parallel *parallel `yaml:"parallel"`
}

type jsBuild struct {
	Name            string `yaml:"name"`
	Folder          string `yaml:"folder"`
	BuildScript     string `yaml:"build_script"`
	PackageManager  string `yaml:"package_manager"`
	InstallPackages *bool  `yaml:"install_packages"`
	Timeout         string `yaml:"timeout"`
}

type bundle struct {
	Name       string `yaml:"name"`
	Entrypoint string `yaml:"entrypoint"`
	SourceDir  string `yaml:"source_dir"`
	Output     string `yaml:"output"`
	Encrypt    bool   `yaml:"encrypt"`
}

type manifest struct {
	Name          string   `yaml:"name"`
	FxVersion     string   `yaml:"fx_version"`
	Game          string   `yaml:"game"`
	Author        string   `yaml:"author"`
	Description   string   `yaml:"description"`
	Version       string   `yaml:"version"`
	ClientScripts []string `yaml:"client_scripts"`
	ServerScripts []string `yaml:"server_scripts"`
	SharedScripts []string `yaml:"shared_scripts"`
	Files         []string `yaml:"files"`
	Dependencies  []string `yaml:"dependencies"`
	UIPage        string   `yaml:"ui_page"`
	LoadScreen    string   `yaml:"loadscreen"`
	IsAMap        bool     `yaml:"is_a_map"`
	Lua54         bool     `yaml:"lua54"`
	RDR3Warning   string   `yaml:"rdr3_warning"`
}

type parallel struct {
	Name  string      `yaml:"name"`
	Steps []stepEntry `yaml:"steps"`
}
