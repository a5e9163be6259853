package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	strategyLabel = "strategy"
	reasonLabel   = "reason"
)

var (
	pointsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "octree_points_inserted",
		Help: "The number of points stored in the tree.",
	})

	pointsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "octree_points_dropped",
		Help: "The points the tree refused or merged into an existing occupant.",
	}, []string{
		reasonLabel,
	})

	queryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "octree_query_latency",
		Help:    "The time to answer a range query, in seconds.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
	}, []string{
		strategyLabel,
	})

	queryResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "octree_query_results",
		Help: "The number of points returned by range queries.",
	}, []string{
		strategyLabel,
	})

	verifyMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "octree_verify_mismatches",
		Help: "The range queries whose octree result differed from the linear scan.",
	})
)

func InstrumentPointInserted() {
	pointsInserted.Inc()
}

func InstrumentPointDropped(reason string) {
	pointsDropped.With(prometheus.Labels{
		reasonLabel: reason,
	}).Inc()
}

func InstrumentQuery(strategy string, start time.Time, results int) {
	queryLatency.With(prometheus.Labels{
		strategyLabel: strategy,
	}).Observe(time.Since(start).Seconds())

	queryResults.With(prometheus.Labels{
		strategyLabel: strategy,
	}).Add(float64(results))
}

func InstrumentVerifyMismatch() {
	verifyMismatches.Inc()
}

// Sample is a flattened view of a counter or histogram series
type Sample struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  float64           `json:"value"`
	Count  uint64            `json:"count,omitempty"`
}

// Snapshot gathers the octree metrics from the default registry. Histograms report their sum
// as Value and their sample count as Count.
func Snapshot() ([]Sample, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, family := range families {
		if !isOctreeMetric(family.GetName()) {
			continue
		}
		for _, m := range family.GetMetric() {
			sample := Sample{Name: family.GetName()}
			if len(m.GetLabel()) > 0 {
				sample.Labels = make(map[string]string, len(m.GetLabel()))
				for _, l := range m.GetLabel() {
					sample.Labels[l.GetName()] = l.GetValue()
				}
			}
			switch {
			case m.GetCounter() != nil:
				sample.Value = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				sample.Value = m.GetHistogram().GetSampleSum()
				sample.Count = m.GetHistogram().GetSampleCount()
			}
			samples = append(samples, sample)
		}
	}
	return samples, nil
}

func isOctreeMetric(name string) bool {
	return strings.HasPrefix(name, "octree_")
}
