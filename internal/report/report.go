package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/utkarsh5026/montepi/estimate"
	"github.com/utkarsh5026/montepi/internal/metrics"
)

var bold = color.New(color.Bold)

// Progress is a spinner counting folded batches.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress creates a spinner writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Sampling"),
			progressbar.OptionSetWriter(w),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("batches"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		),
	}
}

// Observer returns a batch hook advancing the spinner.
func (p *Progress) Observer() func(estimate.BatchEvent) {
	return func(ev estimate.BatchEvent) {
		p.bar.Describe(fmt.Sprintf("Sampling (shared %.6f)", ev.Shared))
		_ = p.bar.Add(1)
	}
}

// Finish clears the spinner.
func (p *Progress) Finish() {
	_ = p.bar.Finish()
}

// WorkerRow is one rendered line of the worker table.
type WorkerRow struct {
	WorkerID  int
	Batches   int
	Mean      float64
	StdDev    float64
	Converged time.Duration
}

// Rows summarizes the batch estimates of every worker.
func Rows(res estimate.Result) []WorkerRow {
	rows := make([]WorkerRow, 0, len(res.Workers))
	for _, w := range res.Workers {
		rows = append(rows, WorkerRow{
			WorkerID:  w.WorkerID,
			Batches:   w.Batches,
			Mean:      w.Mean,
			StdDev:    w.StdDev(),
			Converged: w.Converged,
		})
	}
	return rows
}

// Render writes the per-worker table and a run summary to w.
func Render(w io.Writer, res estimate.Result, snap metrics.Snapshot) error {
	fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "Workers")

	table := tablewriter.NewWriter(w)
	table.Header("Worker", "Batches", "Metered", "Batch Mean", "Batch StdDev", "Converged After")

	for _, row := range Rows(res) {
		converged := "-"
		if row.Converged > 0 {
			converged = row.Converged.Round(time.Microsecond).String()
		}

		if err := table.Append(
			strconv.Itoa(row.WorkerID),
			strconv.Itoa(row.Batches),
			fmt.Sprintf("%.0f", snap.BatchesByWorker[row.WorkerID]),
			fmt.Sprintf("%.6f", row.Mean),
			fmt.Sprintf("%.6f", row.StdDev),
			converged,
		); err != nil {
			return err
		}
	}

	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "Summary")
	fmt.Fprintf(w, "  Batches:          %.0f\n", snap.Batches)
	fmt.Fprintf(w, "  Samples:          %.0f\n", snap.Samples)
	fmt.Fprintf(w, "  Mean of batches:  %.6f\n", snap.BatchMean)
	fmt.Fprintf(w, "  Shared estimate:  %.6f\n", res.Value)
	fmt.Fprintf(w, "  Absolute error:   %g\n", res.AbsError)
	fmt.Fprintf(w, "  Last observed:    %.6f (error %g)\n", snap.SharedValue, snap.SharedError)
	fmt.Fprintf(w, "  Elapsed:          %v\n", res.Elapsed.Round(time.Millisecond))

	return nil
}
