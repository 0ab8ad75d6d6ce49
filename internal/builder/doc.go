// Package builder turns a resource's configuration model into executable
// steps and runs them. A Resource runs its steps strictly in declared order
// and keeps going after a failed step; BuildAll runs many resources
// concurrently and joins them all before returning.
package builder
