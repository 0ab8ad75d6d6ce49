// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the build lifecycle: resource discovery,
// build file loading, the concurrent build and the final summary. It is
// decoupled from any specific entrypoint like a CLI.
package app
