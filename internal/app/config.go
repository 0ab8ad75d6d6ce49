package app

import (
	"errors"
	"fmt"

	"github.com/vk/jade/internal/config"
)

// Target values with a special meaning.
const (
	// TargetAll builds every resource below the resources directory.
	TargetAll = ""
	// TargetCurrent builds the start directory as a single resource.
	TargetCurrent = "."
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Target is a resource name, TargetCurrent or TargetAll.
	Target string
	// Root is the directory discovery starts from.
	Root string
	// Env selects env-prefixed build files.
	Env            string
	PackageManager string
	// Only restricts the run to these leaf step kinds.
	Only []config.StepKind
	// Workers caps concurrently built resources. 0 means unlimited.
	Workers int
	// Strict turns failed steps into a failed run.
	Strict bool

	LogFormat string
	LogLevel  string
	NoLogo    bool
	Trace     bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.PackageManager == "" {
		return nil, errors.New("PackageManager is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	for _, k := range cfg.Only {
		if _, ok := config.ParseKind(string(k)); !ok {
			return nil, fmt.Errorf("unknown step kind %q", k)
		}
	}
	return &cfg, nil
}
