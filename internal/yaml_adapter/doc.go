// Package yaml_adapter loads jade.yaml build files into the format-agnostic
// config model. It mirrors the HCL loader: the same step kinds, the same
// field names and the same validation.
package yaml_adapter
