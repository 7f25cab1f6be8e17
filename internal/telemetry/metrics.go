// Package telemetry holds the process-wide Prometheus instruments for the
// search pipeline. Metrics are registered on the default registry; exposing
// them over HTTP is left to embedding services.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SequencesSearched counts sequences that completed alignment.
	SequencesSearched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "profsearch_sequences_searched_total",
		Help: "Total sequences aligned against a profile model",
	})

	// ResiduesProcessed counts residues consumed by the aligner.
	ResiduesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "profsearch_residues_processed_total",
		Help: "Total residues consumed by Viterbi alignments",
	})

	// AlignDuration observes per-sequence alignment wall time.
	AlignDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "profsearch_align_duration_seconds",
		Help:    "Per-sequence Viterbi alignment duration",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
	})
)
