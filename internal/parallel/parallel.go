// Package parallel provides chunked parallel execution over flat index
// spaces.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
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
		MinChunkSize: 1024,
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is
// too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForRanges executes f over disjoint chunks [lo, hi) covering [0, n).
// The first error wins; chunks not yet started are skipped once a failure
// is recorded. No ordering guarantee exists between chunks.
func ForRanges(n int, f func(lo, hi int) error, cfg Config) error {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		return f(0, n)
	}

	// Smaller chunks than For uses: abort granularity is one chunk, so
	// a fault stops the dispatch without computing the whole range.
	chunkSize := max((n+4*cfg.NumWorkers-1)/(4*cfg.NumWorkers), cfg.MinChunkSize)

	var (
		wg     sync.WaitGroup
		failed atomic.Bool
		once   sync.Once
		first  error
	)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			if failed.Load() {
				return
			}
			if err := f(lo, hi); err != nil {
				once.Do(func() { first = err })
				failed.Store(true)
			}
		}(start, end)
	}
	wg.Wait()

	return first
}
