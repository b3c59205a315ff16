// Package metrics defines and registers all custom Prometheus metrics for the
// stargazing API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stargazing"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - operation: "signup" or "login"
//   - result: "success", "conflict", "invalid", "throttled" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// AccessDeniedTotal counts requests rejected by the access control middleware.
// Label:
//   - reason: "missing_token", "invalid_token" or "forbidden_role"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by access control.",
	},
	[]string{"reason"},
)

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordMutationsTotal counts successful writes to the record store.
// Labels:
//   - entity: "user" or "event"
//   - operation: "create", "update" or "delete"
var RecordMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_mutations_total",
		Help:      "Total number of records created, updated or deleted.",
	},
	[]string{"entity", "operation"},
)

// StoreOperationDuration measures record store round trips.
// Labels:
//   - backend: "file" or "mongo"
//   - collection: "users" or "events"
//   - operation: "read" or "write"
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of record store reads and writes.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"backend", "collection", "operation"},
)
