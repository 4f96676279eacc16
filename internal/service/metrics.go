package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reconcileTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "compass_sync_reconcile_total",
		Help: "Cache mutations by operation and outcome",
	}, []string{"operation", "outcome"})

	orphanedAttachTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "compass_sync_orphaned_attach_total",
		Help: "Financial attaches with no matching primary record",
	}, []string{"handling"})

	sweepRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "compass_sync_sweep_runs_total",
		Help: "Backfill sweep invocations by outcome",
	}, []string{"outcome"})

	sweepItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "compass_sync_sweep_items_total",
		Help: "Backfill sweep items by outcome",
	}, []string{"outcome"})

	sweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "compass_sync_sweep_duration_seconds",
		Help:    "Backfill sweep duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	lookupTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "compass_sync_lookup_total",
		Help: "Leaning lookups by outcome",
	}, []string{"outcome"})
)

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
