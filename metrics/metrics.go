// SPDX-License-Identifier: MIT
// Package metrics exposes Prometheus instruments for matching runs.
//
// A Collector owns a private registry, so several collectors (one per test,
// one per CLI invocation) never clash. The CLI dumps the registry in the
// text exposition format with WriteFile, ready for a node-exporter
// textfile collector.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/lvmatch/montecarlo"
)

const namespace = "lvmatch"

// Outcome label values of the trials counter.
const (
	OutcomeAdmitted  = "admitted"
	OutcomeDiscarded = "discarded"
)

// Collector groups the run instruments.
type Collector struct {
	reg *prometheus.Registry

	trials  *prometheus.CounterVec
	overall prometheus.Histogram
	runs    *prometheus.CounterVec
	best    *prometheus.GaugeVec
}

// New registers every instrument on a fresh registry.
func New() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trials_total",
			Help:      "Monte-Carlo trials by outcome.",
		}, []string{"outcome"}),
		overall: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trial_overall_score",
			Help:      "Overall score of admissible trials.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished runs by method.",
		}, []string{"method"}),
		best: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_score",
			Help:      "Best score of the last run by method.",
		}, []string{"method"}),
	}
	c.reg.MustRegister(c.trials, c.overall, c.runs, c.best)

	return c
}

// Registry returns the private registry.
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// Observe records one trial.
func (c *Collector) Observe(ev montecarlo.TrialEvent) {
	if ev.Discarded {
		c.trials.WithLabelValues(OutcomeDiscarded).Inc()

		return
	}
	c.trials.WithLabelValues(OutcomeAdmitted).Inc()
	c.overall.Observe(ev.Overall)
}

// Hook returns an Options.OnTrial callback that observes ev and then calls
// next, if any.
func (c *Collector) Hook(next func(montecarlo.TrialEvent)) func(montecarlo.TrialEvent) {
	return func(ev montecarlo.TrialEvent) {
		c.Observe(ev)
		if next != nil {
			next(ev)
		}
	}
}

// RunFinished counts a finished run and sets its best score.
func (c *Collector) RunFinished(method string, best float64) {
	c.runs.WithLabelValues(method).Inc()
	c.best.WithLabelValues(method).Set(best)
}

// WriteFile writes the registry to path in the text exposition format.
func (c *Collector) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.reg); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	return nil
}
