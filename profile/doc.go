// Package profile provides optional runtime profiling for seva.
//
// Profiling is built on [github.com/pkg/profile] and is compiled in only
// with the pprof build tag:
//
//	go build -tags pprof .
//
// Without the tag [Modes] is empty and every [Profiler] is a no-op.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace
//
// # Usage
//
//	p := profile.New(profile.WithMode("cpu"), profile.WithPath(dir))
//	defer p.Start().Stop()
//
// Inspect the output with:
//
//	go tool pprof -http=: seva cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
