package metrics

import (
	"math"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/utkarsh5026/montepi/estimate"
)

const namespace = "montepi"

// Metrics holds the collectors of one run on a private registry.
// Nothing is served; the registry is gathered into the end-of-run report.
type Metrics struct {
	registry *prometheus.Registry

	Batches      *prometheus.CounterVec
	Samples      prometheus.Counter
	SharedValue  prometheus.Gauge
	SharedError  prometheus.Gauge
	BatchResults prometheus.Histogram
}

// Snapshot holds gathered metric values.
type Snapshot struct {
	Batches         float64
	BatchesByWorker map[int]float64
	Samples         float64
	SharedValue     float64
	SharedError     float64
	BatchMean       float64
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		Batches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batches_total",
				Help:      "Batches folded into the shared estimate",
			},
			[]string{"worker"},
		),
		Samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Points drawn across all batches",
		}),
		SharedValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "shared_estimate",
			Help:      "Shared estimate after the latest update",
		}),
		SharedError: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "shared_abs_error",
			Help:      "Absolute error of the shared estimate after the latest update",
		}),
		BatchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_estimate",
			Help:      "Distribution of per-batch estimates",
			Buckets:   prometheus.LinearBuckets(2.9, 0.05, 10),
		}),
	}

	reg.MustRegister(m.Batches, m.Samples, m.SharedValue, m.SharedError, m.BatchResults)

	return m
}

// Observer returns a batch hook recording every folded batch of batchSize
// samples. The gauges hold whatever update was observed last, which is not
// necessarily the last update applied to the estimate.
func (m *Metrics) Observer(batchSize uint32) func(estimate.BatchEvent) {
	return func(ev estimate.BatchEvent) {
		m.Batches.WithLabelValues(strconv.Itoa(ev.WorkerID)).Inc()
		m.Samples.Add(float64(batchSize))
		m.SharedValue.Set(float64(ev.Shared))
		m.SharedError.Set(math.Abs(float64(ev.Shared - estimate.Pi)))
		m.BatchResults.Observe(float64(ev.Local))
	}
}

// Snapshot gathers the registry into plain values.
func (m *Metrics) Snapshot() (Snapshot, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{BatchesByWorker: make(map[int]float64)}
	for _, mf := range families {
		switch mf.GetName() {
		case namespace + "_batches_total":
			for _, metric := range mf.GetMetric() {
				v := metric.GetCounter().GetValue()
				snap.Batches += v
				if id, ok := workerLabel(metric); ok {
					snap.BatchesByWorker[id] = v
				}
			}
		case namespace + "_samples_total":
			snap.Samples = firstValue(mf)
		case namespace + "_shared_estimate":
			snap.SharedValue = firstValue(mf)
		case namespace + "_shared_abs_error":
			snap.SharedError = firstValue(mf)
		case namespace + "_batch_estimate":
			if ms := mf.GetMetric(); len(ms) > 0 {
				h := ms[0].GetHistogram()
				if h.GetSampleCount() > 0 {
					snap.BatchMean = h.GetSampleSum() / float64(h.GetSampleCount())
				}
			}
		}
	}

	return snap, nil
}

func workerLabel(metric *dto.Metric) (int, bool) {
	for _, lp := range metric.GetLabel() {
		if lp.GetName() == "worker" {
			id, err := strconv.Atoi(lp.GetValue())
			return id, err == nil
		}
	}
	return 0, false
}

func firstValue(mf *dto.MetricFamily) float64 {
	ms := mf.GetMetric()
	if len(ms) == 0 {
		return 0
	}
	if c := ms[0].GetCounter(); c != nil {
		return c.GetValue()
	}
	return ms[0].GetGauge().GetValue()
}
