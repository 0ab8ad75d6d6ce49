// Package config defines the format-agnostic build configuration model of a
// resource, along with the Loader interface for reading it from disk.
//
// The `config.Model` is the single source of truth for the `builder`
// package. Concrete loaders for HCL and YAML build files live in separate
// packages.
package config
