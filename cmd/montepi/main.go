// Command montepi estimates π with concurrent Monte Carlo workers.
//
// Usage:
//
//	montepi <num_samples> <num_threads> <threshold>
//
// The first stdout line is the detected hardware parallelism, the second is
// "<elapsed_seconds>  <absolute_error>" once every worker has stopped.
// Optional MONTEPI_* environment variables tune logging, pinning, seeding,
// rate limiting, and a progress spinner and report on stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/utkarsh5026/montepi/estimate"
	"github.com/utkarsh5026/montepi/internal/config"
	"github.com/utkarsh5026/montepi/internal/cpu"
	"github.com/utkarsh5026/montepi/internal/logging"
	"github.com/utkarsh5026/montepi/internal/metrics"
	"github.com/utkarsh5026/montepi/internal/report"
	"go.uber.org/zap"
)

var red = color.New(color.FgRed)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	start := time.Now()

	program := "montepi"
	if len(args) > 0 {
		program = filepath.Base(args[0])
		args = args[1:]
	}

	cfg, err := config.Parse(args)
	if err != nil {
		fatal(stderr, err)
		fmt.Fprintln(stderr, config.Usage(program))
		return 1
	}

	tunables, err := config.LoadTunables()
	if err != nil {
		fatal(stderr, err)
		return 1
	}

	logCfg := logging.DefaultConfig()
	if tunables.LogLevel != "" {
		logCfg.Level = tunables.LogLevel
	}
	logCfg.Development = tunables.LogDev

	logger, err := logging.New(logCfg)
	if err != nil {
		fatal(stderr, err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	fmt.Fprintln(stdout, cpu.Available())

	opts := []estimate.Option{
		estimate.WithWorkerCount(int(cfg.Workers)),
		estimate.WithBatchSize(cfg.Samples),
		estimate.WithThreshold(cfg.Threshold),
		estimate.WithSeed(tunables.Seed),
		estimate.WithLogger(logger),
	}
	if tunables.PinWorkers {
		opts = append(opts, estimate.WithCPUAffinity())
	}
	if tunables.RateLimit > 0 {
		opts = append(opts, estimate.WithRateLimit(tunables.RateLimit, tunables.RateBurst))
	}

	var hooks []func(estimate.BatchEvent)

	var m *metrics.Metrics
	if tunables.Report {
		m = metrics.New()
		hooks = append(hooks, m.Observer(cfg.Samples))
	}

	var progress *report.Progress
	if tunables.Progress {
		progress = report.NewProgress(stderr)
		hooks = append(hooks, progress.Observer())
	}

	if len(hooks) > 0 {
		opts = append(opts, estimate.WithOnBatch(func(ev estimate.BatchEvent) {
			for _, h := range hooks {
				h(ev)
			}
		}))
	}

	logger.Info("starting run",
		zap.Uint32("samples", cfg.Samples),
		zap.Uint8("workers", cfg.Workers),
		zap.Float32("threshold", cfg.Threshold),
	)

	res, err := estimate.New(opts...).Run(context.Background())
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		fatal(stderr, err)
		return 1
	}

	elapsed := int64(time.Since(start) / time.Second)
	fmt.Fprintf(stdout, "%d  %s\n", elapsed, formatError(res.AbsError))

	if m != nil {
		snap, err := m.Snapshot()
		if err != nil {
			logger.Warn("gathering metrics failed", zap.Error(err))
			return 0
		}
		if err := report.Render(stderr, res, snap); err != nil {
			logger.Warn("rendering report failed", zap.Error(err))
		}
	}

	return 0
}

// formatError renders v as the shortest decimal that reads back as the same
// float32, without an exponent.
func formatError(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

func fatal(w io.Writer, err error) {
	_, _ = red.Fprintf(w, "montepi: %v\n", err)
}
