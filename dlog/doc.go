// Package dlog is the module's ambient structured-logging facility, a thin
// wrapper over github.com/joeycumines/logiface (backed by
// github.com/joeycumines/stumpy's JSON event implementation) the same way
// every teacher submodule carries its own small logiface-based logger
// rather than reaching for fmt.Println or the standard log package.
//
// It backs the debug() operator (spec.md section 6) and the scheduler's
// diagnostic trail (frontier advances, batch emission). Consolidated and
// FixpointReached are defined here but have no caller in the dataflow
// runtime.
package dlog
