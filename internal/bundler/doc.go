// Package bundler packs a tree of Lua modules into one self-contained file.
//
// Resolution starts at an entrypoint, scans its text for require("<id>")
// calls and follows each id to <source_dir>/<id with dots as separators>.lua,
// recursively. Every module is scanned once, so diamonds and cycles terminate.
// The emitted file registers each module behind a deferred initializer and
// overrides require with a memoizing loader, then appends the entrypoint
// source verbatim.
package bundler
