package estimate

import (
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBatchSize = 10_000
	defaultThreshold = 1e-3
)

// Option is a functional option for configuring a Simulation.
type Option func(*simulationConfig)

type simulationConfig struct {
	workerCount int
	batchSize   uint32
	threshold   float32
	seed        uint64
	rateLimiter *rate.Limiter
	pinWorkers  bool
	onBatch     func(BatchEvent)
	logger      *zap.Logger
}

func createConfig(opts ...Option) *simulationConfig {
	cfg := &simulationConfig{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   defaultBatchSize,
		threshold:   defaultThreshold,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	return cfg
}

// WithWorkerCount sets the number of concurrent workers.
// If not specified, defaults to runtime.GOMAXPROCS(0). The count is never
// clamped to the number of CPUs; zero starts no workers at all.
func WithWorkerCount(count int) Option {
	return func(cfg *simulationConfig) {
		if count >= 0 {
			cfg.workerCount = count
		}
	}
}

// WithBatchSize sets how many points each worker draws per batch.
func WithBatchSize(samples uint32) Option {
	return func(cfg *simulationConfig) {
		cfg.batchSize = samples
	}
}

// WithThreshold sets the absolute error against Pi at which a worker stops.
// A threshold of 0 is practically unreachable and the workers spin forever.
func WithThreshold(threshold float32) Option {
	return func(cfg *simulationConfig) {
		cfg.threshold = threshold
	}
}

// WithSeed makes sampling reproducible per worker: worker i draws from a PCG
// stream seeded with (seed, i). A zero seed keeps random seeding.
func WithSeed(seed uint64) Option {
	return func(cfg *simulationConfig) {
		cfg.seed = seed
	}
}

// WithRateLimit caps how many batches the whole simulation starts per second.
// burst specifies how many batches may start back to back.
// If not specified, batches are not throttled.
//
// Example:
//
//	WithRateLimit(50, 4) // at most 50 batches/sec across all workers
func WithRateLimit(batchesPerSecond float64, burst int) Option {
	return func(cfg *simulationConfig) {
		if batchesPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(batchesPerSecond), burst)
		}
	}
}

// WithCPUAffinity locks each worker to an OS thread pinned to one CPU.
// Pinning is best effort and a no-op where the platform does not support it.
func WithCPUAffinity() Option {
	return func(cfg *simulationConfig) {
		cfg.pinWorkers = true
	}
}

// WithOnBatch registers a hook called by a worker after each batch has been
// folded into the shared estimate. The hook runs on the worker goroutine and
// must be safe for concurrent use.
func WithOnBatch(fn func(BatchEvent)) Option {
	return func(cfg *simulationConfig) {
		cfg.onBatch = fn
	}
}

// WithLogger sets the logger used for batch and convergence events.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *simulationConfig) {
		cfg.logger = logger
	}
}
