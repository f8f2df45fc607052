// Package metrics exports Prometheus metrics for parse runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/chriserin/pegast/internal/eval"
)

// Recorder implements eval.Observer on its own registry.
type Recorder struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pegast_runs_total",
				Help: "Parse runs by language and outcome",
			},
			[]string{"language", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pegast_run_duration_seconds",
				Help:    "Time spent parsing and building the AST",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"language"},
		),
	}
}

func (r *Recorder) ObserveRun(language string, outcome eval.Outcome, elapsed time.Duration) {
	r.runs.WithLabelValues(language, string(outcome)).Inc()
	r.duration.WithLabelValues(language).Observe(elapsed.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile writes the current values in the Prometheus text format,
// suitable for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
