// Package parallel splits index ranges across worker goroutines.
//
// The matrix engine uses it to fan the independent output rows of large
// products across CPUs while keeping small products on the calling
// goroutine, where spawning workers would cost more than the arithmetic.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how an index range is split across goroutines.
type Config struct {
	Enabled   bool // run workers at all; false forces sequential execution
	Workers   int  // goroutines to fan out across
	MinStride int  // smallest range worth parallelizing
}

// DefaultConfig sizes the worker pool to the CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:   n > 1,
		Workers:   n,
		MinStride: 64,
	}
}

// For calls f(i) for every i in [0, n), fanning contiguous chunks out to
// workers when the range is large enough. Each index is visited exactly
// once; f must be safe to call from multiple goroutines on distinct
// indices.
func For(n int, cfg Config, f func(i int)) {
	if !cfg.Enabled || n < cfg.MinStride {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	stride := max((n+cfg.Workers-1)/cfg.Workers, cfg.MinStride)
	var wg sync.WaitGroup
	for start := 0; start < n; start += stride {
		end := min(start+stride, n)
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
