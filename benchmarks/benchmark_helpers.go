package benchmarks

import (
	"context"
	"testing"

	"github.com/utkarsh5026/montepi/estimate"
)

// simulationConfig defines a benchmark configuration for a simulation setup
type simulationConfig struct {
	name string
	opts []estimate.Option
}

// getAllConfigs returns the simulation setups to compare for workerCount workers
func getAllConfigs(workerCount int, batchSize uint32) []simulationConfig {
	base := []estimate.Option{
		estimate.WithWorkerCount(workerCount),
		estimate.WithBatchSize(batchSize),
		estimate.WithThreshold(1e-2),
	}

	return []simulationConfig{
		{
			name: "Default",
			opts: base,
		},
		{
			name: "Pinned",
			opts: append(append([]estimate.Option{}, base...), estimate.WithCPUAffinity()),
		},
		{
			name: "WithHook",
			opts: append(append([]estimate.Option{}, base...), estimate.WithOnBatch(func(estimate.BatchEvent) {})),
		},
	}
}

// runSimulation runs one simulation to convergence and fails the benchmark on error
func runSimulation(b *testing.B, opts []estimate.Option) estimate.Result {
	b.Helper()

	res, err := estimate.New(opts...).Run(context.Background())
	if err != nil {
		b.Fatalf("simulation failed: %v", err)
	}
	return res
}
