// Package parallel provides the fan-out helpers used by the CPU kernels.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// Sequential returns a Config that never spawns goroutines.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// chunks splits [0, n) into contiguous ranges, or returns a single range
// when parallelism is disabled or not worth it.
func (c Config) chunks(n int) [][2]int {
	if !c.Enabled || c.NumWorkers <= 1 || n < 2*max(c.MinChunkSize, 1) {
		return [][2]int{{0, n}}
	}
	size := max((n+c.NumWorkers-1)/c.NumWorkers, c.MinChunkSize)
	out := make([][2]int, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		out = append(out, [2]int{start, min(start+size, n)})
	}
	return out
}

// ForRange calls f(start, end) on disjoint ranges covering [0, n).
// Ranges run concurrently when cfg allows it; f must only touch state owned
// by its range.
func ForRange(n int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	ranges := cfg.chunks(n)
	if len(ranges) == 1 {
		f(0, n)
		return
	}

	var g errgroup.Group
	g.SetLimit(max(cfg.NumWorkers, 1))
	for _, r := range ranges {
		r := r
		g.Go(func() error {
			f(r[0], r[1])
			return nil
		})
	}
	_ = g.Wait()
}

// For executes f(i) for i in [0, n) with optional parallelism.
func For(n int, f func(i int), cfg Config) {
	ForRange(n, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	}, cfg)
}
