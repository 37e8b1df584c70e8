// Package metrics holds the prometheus collectors for the data layer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	storageFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym",
		Subsystem: "localstore",
		Name:      "memory_fallbacks_total",
		Help:      "Operations served by the in-memory fallback because persistent storage failed, labeled by op.",
	}, []string{"op"})

	schemaUpgrades = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym",
		Subsystem: "localstore",
		Name:      "schema_upgrades_total",
		Help:      "Collection blobs rewritten by a schema upgrade pass, labeled by key.",
	}, []string{"key"})

	droppedWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym",
		Subsystem: "localstore",
		Name:      "dropped_writes_total",
		Help:      "Collection mutations skipped because the stored blob could not be read or is from a newer schema, labeled by key.",
	}, []string{"key"})

	migratedRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym",
		Subsystem: "migration",
		Name:      "records_total",
		Help:      "Records copied from the local store to the remote store, labeled by collection and result.",
	}, []string{"collection", "result"})

	migrationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gym",
		Subsystem: "migration",
		Name:      "duration_seconds",
		Help:      "Wall time of one migration run.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	})

	remoteErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym",
		Subsystem: "remote",
		Name:      "errors_total",
		Help:      "Failed remote document store calls, labeled by operation.",
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(storageFallbacks, schemaUpgrades, droppedWrites, migratedRecords, migrationDuration, remoteErrors)
}

// RecordStorageFallback counts one memory fallback for op ("get", "set", "remove").
func RecordStorageFallback(op string) {
	storageFallbacks.WithLabelValues(op).Inc()
}

func RecordSchemaUpgrade(key string) {
	schemaUpgrades.WithLabelValues(key).Inc()
}

func RecordDroppedWrite(key string) {
	droppedWrites.WithLabelValues(key).Inc()
}

// RecordMigratedRecord counts one record; ok=false marks the record that aborted the run.
func RecordMigratedRecord(collection string, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	migratedRecords.WithLabelValues(collection, result).Inc()
}

func ObserveMigration(d time.Duration) {
	migrationDuration.Observe(d.Seconds())
}

func RecordRemoteError(op string) {
	remoteErrors.WithLabelValues(op).Inc()
}
