package estimate

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Simulation is a fixed set of workers estimating π against one shared
// Estimate. It holds configuration only; every Run starts from a fresh
// sentinel cell.
type Simulation struct {
	config *simulationConfig
	logger *zap.Logger
}

// New creates a Simulation with the given options.
// Default configuration: workers = GOMAXPROCS, 10,000 samples per batch,
// threshold 1e-3.
//
// Example:
//
//	sim := estimate.New(
//	    estimate.WithWorkerCount(8),
//	    estimate.WithBatchSize(100_000),
//	    estimate.WithThreshold(1e-4),
//	)
//	res, err := sim.Run(ctx)
func New(opts ...Option) *Simulation {
	cfg := createConfig(opts...)
	return &Simulation{
		config: cfg,
		logger: cfg.logger.Named("estimate"),
	}
}

// WorkerCount returns the number of workers Run starts.
func (s *Simulation) WorkerCount() int {
	return s.config.workerCount
}

// Run starts exactly WorkerCount workers and waits for all of them.
//
// Each worker stops on its own once it reads a shared value within the
// threshold; there is no shared done flag. With an unreachable threshold Run
// only returns when ctx is done, so callers that need a bound must pass a
// context with a deadline.
//
// Returns:
//   - Result: The final shared value and per-worker stats, filled in even on error
//   - error: The first worker failure (a recovered panic or a context error)
func (s *Simulation) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	shared := &Estimate{}
	stats := make([]WorkerStats, s.config.workerCount)

	s.logger.Debug("starting workers",
		zap.Int("workers", s.config.workerCount),
		zap.Uint32("batch_size", s.config.batchSize),
		zap.Float32("threshold", s.config.threshold),
	)

	var g errgroup.Group
	for i := range s.config.workerCount {
		g.Go(func() error {
			st, err := worker(ctx, s, i, shared)
			stats[i] = st
			return err
		})
	}

	err := g.Wait()

	return Result{
		Value:    shared.Value(),
		AbsError: shared.AbsError(),
		Updates:  shared.Updates(),
		Elapsed:  time.Since(start),
		Workers:  stats,
	}, err
}

func (s *Simulation) newSampler(workerID int) *Sampler {
	if s.config.seed == 0 {
		return newRandomSampler()
	}
	return NewSampler(s.config.seed, uint64(workerID))
}
