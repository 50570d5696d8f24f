package estimate

import (
	"math"
	"time"
)

// BatchEvent describes one batch after it was folded into the shared estimate.
//
// Fields:
//   - WorkerID: The worker that drew the batch (0-based)
//   - Batch: The 1-based sequence number of the batch within that worker
//   - Local: The batch estimate of π
//   - Shared: The shared value right after this update
type BatchEvent struct {
	WorkerID int
	Batch    int
	Local    float32
	Shared   float32
}

// WorkerStats records what a single worker did during a run.
//
// Fields:
//   - WorkerID: The worker index (0-based)
//   - Batches: How many batches the worker folded into the shared estimate
//   - Mean: Running mean of the worker's batch estimates
//   - M2: Running sum of squared deviations from Mean (Welford)
//   - Converged: Time from the worker's start until it saw the shared value within threshold
//     (zero if the worker did not converge)
//
// The stats are constant size however long the worker runs.
type WorkerStats struct {
	WorkerID  int
	Batches   int
	Mean      float64
	M2        float64
	Converged time.Duration
}

// record adds one batch estimate using Welford's update.
func (w *WorkerStats) record(local float64) {
	w.Batches++
	delta := local - w.Mean
	w.Mean += delta / float64(w.Batches)
	w.M2 += delta * (local - w.Mean)
}

// StdDev returns the sample standard deviation of the batch estimates,
// or 0 with fewer than two batches.
func (w WorkerStats) StdDev() float64 {
	if w.Batches < 2 {
		return 0
	}
	return math.Sqrt(w.M2 / float64(w.Batches-1))
}

// Result is the outcome of a Simulation run.
type Result struct {
	Value    float32
	AbsError float32
	Updates  uint64
	Elapsed  time.Duration
	Workers  []WorkerStats
}
