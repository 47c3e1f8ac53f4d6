// Package profile provides optional runtime profiling for extlookup.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] to provide runtime profiling
// capabilities with conditional compilation support. Profiling is optional and
// must be enabled at build time using the "pprof" build tag:
//
//	go build -tags pprof .
//
// When built without the tag, [Profiler.Start] always returns a no-op and
// [Modes] is empty.
//
// # Available Profiling Modes
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// Profile files are written to Path with names matching the profiling mode
// (e.g., cpu.pprof, mem.pprof). Analyze them with:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// A lookup is usually dominated by file parsing on the first call of a
// session, so profile a run that resolves many keys (e.g. the keys command)
// to see where time goes.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
