// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the vibe engine. Because every failure
// path in this engine degrades silently rather than surfacing an error,
// these collectors are the only place failures stay observable.

var (
	// Collective store RPC metrics
	StoreRPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voyo_store_rpc_duration_seconds",
			Help:    "Duration of collective score store RPCs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"procedure"},
	)

	StoreRPCErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyo_store_rpc_errors_total",
			Help: "Total collective store RPC failures, by procedure and kind",
		},
		[]string{"procedure", "kind"}, // kind: unreachable, malformed, rejected
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "voyo_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyo_circuit_breaker_transitions_total",
			Help: "Total circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Training flywheel metrics
	TrainingWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyo_training_writes_total",
			Help: "Total training writes, by action and outcome",
		},
		[]string{"action", "outcome"}, // outcome: applied, unknown_track, dropped
	)

	TrainingQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "voyo_training_queue_depth",
			Help: "Interactions buffered in the training pipeline",
		},
	)

	// Feed planner metrics
	FeedPartitionFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyo_feed_partition_fallbacks_total",
			Help: "Feed partitions served from the static seed catalog",
		},
		[]string{"partition"}, // hot, discovery, familiar
	)

	FeedRequestsSuperseded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voyo_feed_requests_superseded_total",
			Help: "Feed requests discarded because a newer request arrived",
		},
	)

	// Signal source metrics
	SignalSourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyo_signal_source_failures_total",
			Help: "Signal sources that contributed zero due to read failure",
		},
		[]string{"source"}, // intent, reaction, behavior
	)

	// Session query cache metrics
	QueryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voyo_query_cache_hits_total",
			Help: "Session query cache hits",
		},
	)

	QueryCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voyo_query_cache_misses_total",
			Help: "Session query cache misses",
		},
	)
)

// ObserveRPC records the duration of a store RPC.
func ObserveRPC(procedure string, start time.Time) {
	StoreRPCDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
}
