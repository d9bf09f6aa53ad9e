// Package metrics registers the Prometheus instruments for the relay and
// the apply engine, exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsIngested counts records accepted by the ingest endpoints,
	// labeled by record type (guess|event).
	RecordsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordguess_records_ingested_total",
		Help: "Records accepted by the relay ingest endpoints.",
	}, []string{"type"})

	// RecordsApplied counts apply-engine outcomes, labeled by record type
	// and outcome (won|missed|applied|skipped).
	RecordsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordguess_records_applied_total",
		Help: "Records processed by the apply engine, by outcome.",
	}, []string{"type", "outcome"})

	// RecordsDeduplicated counts records skipped because their id was
	// already applied.
	RecordsDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordguess_records_deduplicated_total",
		Help: "Records skipped by the consumer-side dedup set.",
	})

	// PollFailures counts poller ticks that could not fetch the pending
	// snapshot.
	PollFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordguess_poll_failures_total",
		Help: "Pending-snapshot fetches that failed.",
	})

	// PollTicks counts completed poller ticks.
	PollTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordguess_poll_ticks_total",
		Help: "Poller ticks executed.",
	})
)
