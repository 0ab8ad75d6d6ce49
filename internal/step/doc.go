// Package step defines the BuildStep capability shared by every step kind,
// the boundary that turns a step's failure into a logged, traced error, and
// the Parallel group that fans its children out concurrently.
package step
