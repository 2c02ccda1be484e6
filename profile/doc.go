// Package profile provides optional runtime profiling for the confc
// command.
//
// It wraps [github.com/pkg/profile] behind the "pprof" build tag. In the
// default build every operation is a no-op with zero overhead; building
// with -tags pprof enables the modes listed by [Modes] (cpu, heap, mem,
// allocs, block, mutex, goroutine, thread, clock, trace).
//
// A profiler is configured as a [Config] and started with [Config.Start]:
//
//	stop := profile.Config(func() (string, string, bool) {
//	    return "cpu", "/tmp/profiles", false
//	}).Start()
//	defer stop.Stop()
//
// Profile files are written to the configured directory with names
// matching the mode (cpu.pprof, heap.pprof, and so on) and analyzed with
// go tool pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
