// Package metrics exposes Prometheus collectors for the evaluator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispatchTotal counts dispatches per backend and outcome.
	DispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ufunc_dispatch_total",
		Help: "Total number of elementwise dispatches",
	}, []string{"backend", "outcome"})

	// DispatchDuration observes wall-clock dispatch latency per backend.
	DispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ufunc_dispatch_duration_seconds",
		Help:    "Elementwise dispatch duration in seconds",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
	}, []string{"backend"})

	// CompileCacheHits counts accelerator pipeline cache hits.
	CompileCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ufunc_compile_cache_hits_total",
		Help: "Total number of accelerator compilation cache hits",
	})

	// CompileCacheMisses counts accelerator pipeline cache misses
	// (first-use compilations).
	CompileCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ufunc_compile_cache_misses_total",
		Help: "Total number of accelerator compilation cache misses",
	})
)
