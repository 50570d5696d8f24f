// Package estimate approximates π by Monte Carlo sampling over a fixed set of
// concurrent workers that share one running estimate.
//
// # Pieces
//
//   - Sampler: draws uniform points in the unit square and returns 4 × inside/total
//     for one batch. Every worker owns an independent random stream.
//   - Estimate: the shared cell. The first batch replaces the sentinel 0; every
//     later batch is averaged with the current value under a single mutex.
//   - Simulation: starts the workers, each of which keeps drawing batches until
//     its own read of the shared value is within the threshold of Pi.
//
// # Basic Usage
//
//	sim := estimate.New(
//	    estimate.WithWorkerCount(4),
//	    estimate.WithBatchSize(100_000),
//	    estimate.WithThreshold(1e-3),
//	)
//	res, err := sim.Run(context.Background())
//	fmt.Println(res.Value, res.AbsError)
//
// # Aggregation
//
// The shared value is a running two-point average, so the final value depends
// on the order in which workers acquire the lock and weighs late batches more
// than early ones. It is not a cumulative mean.
//
// # Termination
//
// Workers stop independently. A worker may exit while another worker's later
// update pushes the shared value back above the threshold. A threshold that
// float32 estimates never reach (0 in practice) keeps the workers running
// until the context passed to Run is done.
//
// # Configuration Options
//
//   - WithWorkerCount(n): Number of workers (default: GOMAXPROCS, never clamped to CPUs)
//   - WithBatchSize(n): Points per batch
//   - WithThreshold(t): Absolute error at which a worker stops
//   - WithSeed(seed): Reproducible per-worker streams
//   - WithRateLimit(batchesPerSecond, burst): Throttle batch starts across the simulation
//   - WithCPUAffinity(): Pin each worker to a CPU where supported
//   - WithOnBatch(fn): Observe every folded batch
//   - WithLogger(logger): zap logger for batch and convergence events
//
// # Error Handling
//
// A panic inside a worker is recovered into an error with a stack trace and
// returned from Run once all workers have been joined.
package estimate
