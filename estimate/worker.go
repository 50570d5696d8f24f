package estimate

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/utkarsh5026/montepi/internal/cpu"
	"go.uber.org/zap"
)

// worker runs one Running → Converged loop against the shared estimate.
//
// It folds one batch in unconditionally, then keeps drawing batches while its
// own read of the shared value is further than the threshold from Pi. The read
// holds the lock only for the read itself, so the value may move again right
// after the check; workers do not agree on when the run is done.
//
// A panic anywhere in the loop is recovered into an error carrying the stack
// so the simulation can report it when it joins the workers.
func worker(
	ctx context.Context,
	sim *Simulation,
	workerID int,
	shared *Estimate,
) (stats WorkerStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("worker panic (worker %d): %v\nstack trace:\n%s", workerID, r, buf[:n])
		}
	}()

	if sim.config.pinWorkers {
		release := cpu.SetupWorkerAffinity(workerID)
		defer release()
	}

	stats.WorkerID = workerID
	sampler := sim.newSampler(workerID)
	start := time.Now()

	if err := sim.runBatch(ctx, workerID, sampler, shared, &stats); err != nil {
		return stats, err
	}

	for shared.AbsError() > sim.config.threshold {
		if err := sim.runBatch(ctx, workerID, sampler, shared, &stats); err != nil {
			return stats, err
		}
	}

	stats.Converged = time.Since(start)
	sim.logger.Info("worker converged",
		zap.Int("worker", workerID),
		zap.Int("batches", stats.Batches),
		zap.Duration("elapsed", stats.Converged),
	)

	return stats, nil
}

// runBatch draws one batch and folds it into the shared estimate.
// ctx is only consulted between batches and by the rate limiter.
func (s *Simulation) runBatch(
	ctx context.Context,
	workerID int,
	sampler *Sampler,
	shared *Estimate,
	stats *WorkerStats,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.config.rateLimiter != nil {
		if err := s.config.rateLimiter.Wait(ctx); err != nil {
			return err
		}
	}

	local := sampler.Run(s.config.batchSize)
	value := shared.update(local)

	stats.record(float64(local))

	if ce := s.logger.Check(zap.DebugLevel, "batch folded"); ce != nil {
		ce.Write(
			zap.Int("worker", workerID),
			zap.Int("batch", stats.Batches),
			zap.Float32("local", local),
			zap.Float32("shared", value),
		)
	}

	if s.config.onBatch != nil {
		s.config.onBatch(BatchEvent{
			WorkerID: workerID,
			Batch:    stats.Batches,
			Local:    local,
			Shared:   value,
		})
	}

	return nil
}
