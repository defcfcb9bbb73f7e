// Package parallel splits index ranges across a bounded set of workers.
package parallel

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Environment variables that override DefaultConfig without recompiling.
const (
	EnvWorkers   = "NDARRAY_WORKERS"
	EnvMinChunk  = "NDARRAY_MIN_CHUNK"
	EnvParallel  = "NDARRAY_PARALLEL"
	defaultChunk = 64 // Typical cache line aware chunk.
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Maximum number of concurrently running workers.
	MinChunkSize int  // Minimum items per worker to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count, then applies the
// NDARRAY_* environment overrides.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	cfg := Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: defaultChunk,
	}
	return cfg.fromEnv(os.Getenv)
}

// fromEnv applies overrides; malformed values are ignored.
func (c Config) fromEnv(getenv func(string) string) Config {
	if v, err := strconv.Atoi(strings.TrimSpace(getenv(EnvWorkers))); err == nil && v > 0 {
		c.NumWorkers = v
		c.Enabled = v > 1
	}
	if v, err := strconv.Atoi(strings.TrimSpace(getenv(EnvMinChunk))); err == nil && v > 0 {
		c.MinChunkSize = v
	}
	if v, err := strconv.ParseBool(strings.TrimSpace(getenv(EnvParallel))); err == nil {
		c.Enabled = v
	}
	return c
}

// Normalize clamps non-positive fields to usable values.
func (c Config) Normalize() Config {
	if c.NumWorkers <= 0 {
		c.NumWorkers = 1
	}
	if c.MinChunkSize <= 0 {
		c.MinChunkSize = 1
	}
	return c
}

// WithItemCost returns c with MinChunkSize converted from elementary
// operations into items that each cost cost operations, so a row of a
// matrix product counts for its k*n multiply-adds. Non-positive costs count
// as 1.
func (c Config) WithItemCost(cost int) Config {
	c = c.Normalize()
	if cost > 1 {
		// ceil(MinChunkSize / cost) without overflowing on huge costs.
		c.MinChunkSize = (c.MinChunkSize-1)/cost + 1
	}
	return c
}

// Range is a half-open interval [Lo, Hi) of indices owned by one worker.
type Range struct {
	Lo, Hi int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.Hi - r.Lo
}

// Partition splits [0, n) into contiguous, disjoint ranges: at most
// cfg.NumWorkers of them, each at least cfg.MinChunkSize long unless a
// single range covers everything. Returns nil for n <= 0.
func Partition(n int, cfg Config) []Range {
	if n <= 0 {
		return nil
	}
	cfg = cfg.Normalize()
	workers := 1
	if cfg.Enabled {
		workers = min(cfg.NumWorkers, n/cfg.MinChunkSize)
		workers = max(workers, 1)
	}

	ranges := make([]Range, workers)
	base, extra := n/workers, n%workers
	lo := 0
	for w := range ranges {
		size := base
		if w < extra {
			size++
		}
		ranges[w] = Range{Lo: lo, Hi: lo + size}
		lo += size
	}
	mustCover(ranges, n)
	return ranges
}

// mustCover panics if ranges are not an exact, ordered tiling of [0, n).
func mustCover(ranges []Range, n int) {
	next := 0
	for _, r := range ranges {
		if r.Lo != next || r.Hi <= r.Lo {
			panic(fmt.Sprintf("parallel: partition %v does not tile [0,%d)", ranges, n))
		}
		next = r.Hi
	}
	if next != n {
		panic(fmt.Sprintf("parallel: partition %v does not tile [0,%d)", ranges, n))
	}
}

// Run executes fn once per range of Partition(n, cfg) and blocks until every
// started worker has returned. A single range runs on the calling goroutine.
// The first error is returned; ranges that have not started by then are skipped.
func Run(n int, cfg Config, fn func(r Range) error) error {
	return RunRanges(Partition(n, cfg), cfg, func(_ int, r Range) error {
		return fn(r)
	})
}

// RunRanges is Run over a precomputed partition. fn also receives the
// position of its range, so reductions can write one partial result per slot.
func RunRanges(ranges []Range, cfg Config, fn func(w int, r Range) error) error {
	switch len(ranges) {
	case 0:
		return nil
	case 1:
		return fn(0, ranges[0])
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.Normalize().NumWorkers)
	for w, r := range ranges {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(w, r)
		})
	}
	return g.Wait()
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	_ = Run(n, cfg, func(r Range) error {
		for i := r.Lo; i < r.Hi; i++ {
			f(i)
		}
		return nil
	})
}
