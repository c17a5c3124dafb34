// package profiler provides wall-clock and memory timing for the discrete
// passes of an offline render (bake, mesh, draw, encode). Output goes to the
// log; there is no export format.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler times named passes and logs duration plus memory statistics when
// each pass completes.
type Profiler struct {
	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{}
}

// Pass starts timing a named pass and returns a function that stops the
// timer and logs the result. Statistics include: pass duration, live heap,
// bytes allocated during the pass, and total process memory.
//
// Parameters:
//   - name: the pass name used in the log line
//
// Returns:
//   - func(): call when the pass completes
func (p *Profiler) Pass(name string) func() {
	start := time.Now()
	runtime.ReadMemStats(&p.memStats)
	p.lastTotalAlloc = p.memStats.TotalAlloc

	return func() {
		elapsed := time.Since(start)

		runtime.ReadMemStats(&p.memStats)
		// Alloc: bytes of live heap objects
		// TotalAlloc: cumulative heap allocation (tracks churn during the pass)
		// Sys: total bytes obtained from the OS
		allocMB := float64(p.memStats.Alloc) / 1024 / 1024
		sysMB := float64(p.memStats.Sys) / 1024 / 1024
		passAllocMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024

		log.Printf("[Profiler] %s: %v | Heap: %.2f MB | Pass Alloc: %.2f MB | Sys: %.2f MB",
			name, elapsed.Round(time.Microsecond), allocMB, passAllocMB, sysMB)
	}
}
