// Package filesystem is the single filesystem abstraction every
// component that touches the game data directory goes through:
// the condition evaluator, the load-order reader, the plugin parser
// adapter and the masterlist sync adapter. Everything is built on
// github.com/spf13/afero so tests run against an in-memory filesystem
// with no real game install, and production code runs against the OS.
package filesystem
