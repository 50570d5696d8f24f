package estimate

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestWorkerStatsMatchesBatchStatistics(t *testing.T) {
	s := NewSampler(5, 8)
	estimates := make([]float64, 500)

	var w WorkerStats
	for i := range estimates {
		estimates[i] = float64(s.Run(200))
		w.record(estimates[i])
	}

	mean, std := stat.MeanStdDev(estimates, nil)
	if w.Batches != len(estimates) {
		t.Fatalf("expected %d batches, got %d", len(estimates), w.Batches)
	}
	if math.Abs(w.Mean-mean) > 1e-9 {
		t.Errorf("running mean %v, want %v", w.Mean, mean)
	}
	if math.Abs(w.StdDev()-std) > 1e-9 {
		t.Errorf("running stddev %v, want %v", w.StdDev(), std)
	}
}

func TestWorkerStatsFewBatches(t *testing.T) {
	var w WorkerStats
	if w.StdDev() != 0 || w.Mean != 0 {
		t.Errorf("empty stats should be zero, got %+v", w)
	}

	w.record(3.1)
	if w.Mean != 3.1 || w.StdDev() != 0 {
		t.Errorf("single batch: expected mean 3.1 and no spread, got mean %v stddev %v", w.Mean, w.StdDev())
	}

	w.record(3.3)
	if math.Abs(w.StdDev()-math.Sqrt(0.02)) > 1e-9 {
		t.Errorf("two batches: unexpected stddev %v", w.StdDev())
	}
}
