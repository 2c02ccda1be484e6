// Package cli contains the command line interface for confc.
//
// # Commands
//
//   - compile: Compile a source file to JSON or YAML (default command)
//   - check:   Check a source file for errors without emitting output
//   - repl:    Start an interactive session
//   - init:    Initialize a configuration file
//
// # Configuration
//
// Default flag values are read from a configuration file written in the
// confc language itself, located at $XDG_CONFIG_HOME/confc/config.conf.
// Keys use underscores in place of flag-name hyphens:
//
//	log_level @"debug"
//	log_format @"json"
//	indent 4
//
// A sibling config.json in Kong's JSON format is also honored.
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/confc/pprof)
package cli
