// Package cpu implements the CPU backend: element-wise kernels, linear
// algebra and the execution-mode dispatcher that picks scalar or lane
// kernels, on the caller or across workers.
package cpu

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/born-ml/ndarray/internal/logging"
	"github.com/born-ml/ndarray/internal/parallel"
	"github.com/born-ml/ndarray/internal/simd"
	"github.com/born-ml/ndarray/internal/tensor"
)

// Backend holds the execution resources shared by every operation: the
// worker configuration, the SIMD instruction set and a logger.
// A Backend is immutable after New and safe for concurrent use.
type Backend struct {
	cfg    parallel.Config
	isa    simd.ISA
	logger *logging.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithWorkers sets the maximum number of concurrently running workers.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("cpu: WithWorkers(%d): must be >= 1", n))
	}
	return func(b *Backend) {
		b.cfg.NumWorkers = n
		b.cfg.Enabled = n > 1
	}
}

// WithMinChunkSize sets the minimum number of rows or elements per worker.
// Panics if n < 1.
func WithMinChunkSize(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("cpu: WithMinChunkSize(%d): must be >= 1", n))
	}
	return func(b *Backend) {
		b.cfg.MinChunkSize = n
	}
}

// WithParallel switches worker fan-out on or off. When off, parallel modes
// run their kernels on the calling goroutine.
func WithParallel(on bool) Option {
	return func(b *Backend) {
		b.cfg.Enabled = on
	}
}

// WithSIMD switches lane kernels on or off. When off, SIMD modes use the
// scalar kernels.
func WithSIMD(on bool) Option {
	return func(b *Backend) {
		if on {
			b.isa = simd.ActiveISA()
		} else {
			b.isa = simd.Generic
		}
	}
}

// WithLogger attaches a structured logger. Dispatch decisions are logged
// at Debug level. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("cpu: WithLogger(nil)")
	}
	return func(b *Backend) {
		b.logger = logging.NewLogger(l.Handler())
	}
}

// New creates a CPU backend. Without options it uses parallel.DefaultConfig
// and the detected ISA, both of which honor the NDARRAY_* environment.
func New(opts ...Option) *Backend {
	b := &Backend{
		cfg:    parallel.DefaultConfig(),
		isa:    simd.ActiveISA(),
		logger: logging.NoopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var (
	defaultOnce    sync.Once
	defaultBackend *Backend
)

// Default returns the process-wide backend built by New() on first use.
func Default() *Backend {
	defaultOnce.Do(func() {
		defaultBackend = New()
	})
	return defaultBackend
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "CPU"
}

// Config returns the worker configuration.
func (b *Backend) Config() parallel.Config {
	return b.cfg
}

// ISA returns the instruction set used by SIMD modes. Generic means SIMD
// modes fall back to scalar kernels.
func (b *Backend) ISA() simd.ISA {
	return b.isa
}

// Kernel names reported in dispatch logs.
const (
	kernelScalar = "scalar"
	kernelLanes  = "lanes"
)

// plan is the dispatcher's decision for one call: which kernel family
// to run and how to split the work.
type plan struct {
	op     string
	cfg    parallel.Config
	lanes  bool
	logger *logging.Logger
}

// planFor resolves mode into a kernel choice for an operation on T.
// Lane kernels are chosen only for float elements on a non-generic ISA.
func planFor[T tensor.Numeric](b *Backend, op string, mode tensor.Mode, shape tensor.Shape) (plan, error) {
	if !mode.Valid() {
		return plan{}, tensor.Errorf(tensor.KindInvalidOperation, op, "unknown execution mode %d", int(mode))
	}
	cfg := b.cfg
	cfg.Enabled = cfg.Enabled && mode.IsParallel()
	p := plan{
		op:     op,
		cfg:    cfg,
		lanes:  mode.IsSIMD() && b.isa != simd.Generic && tensor.IsFloat[T](),
		logger: b.logger,
	}

	kernel := kernelScalar
	if p.lanes {
		kernel = kernelLanes
	}
	workers := 1
	if cfg.Enabled {
		workers = cfg.Normalize().NumWorkers
	}
	b.logger.LogDispatch(context.Background(), logging.Dispatch{
		Op:      op,
		Mode:    mode.String(),
		Kernel:  kernel,
		Shape:   shape.String(),
		DType:   tensor.DataTypeOf[T]().String(),
		Workers: workers,
	})
	return p, nil
}

// run partitions [0, n) and executes fn per range.
func (p plan) run(n int, fn func(r parallel.Range) error) error {
	return p.runCost(n, 1, fn)
}

// runCost is run for items that each cost cost elementary operations.
func (p plan) runCost(n, cost int, fn func(r parallel.Range) error) error {
	return p.runRanges(p.partitionCost(n, cost), func(_ int, r parallel.Range) error {
		return fn(r)
	})
}

func (p plan) partition(n int) []parallel.Range {
	return p.partitionCost(n, 1)
}

// partitionCost splits [0, n) so that every range carries at least
// MinChunkSize operations when items cost cost each.
func (p plan) partitionCost(n, cost int) []parallel.Range {
	return parallel.Partition(n, p.cfg.WithItemCost(cost))
}

// runRanges executes fn over a precomputed partition and logs an abort.
func (p plan) runRanges(ranges []parallel.Range, fn func(w int, r parallel.Range) error) error {
	err := parallel.RunRanges(ranges, p.cfg, fn)
	if err != nil && len(ranges) > 1 {
		p.logger.LogAbort(context.Background(), p.op, len(ranges), err)
	}
	return err
}

// rowCost multiplies per-item work factors, saturating at math.MaxInt.
func rowCost(factors ...int) int {
	c := 1
	for _, f := range factors {
		if f <= 1 {
			continue
		}
		if c > math.MaxInt/f {
			return math.MaxInt
		}
		c *= f
	}
	return c
}
