// Package metrics defines and registers all custom Prometheus metrics for the
// Little Lemon API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "littlelemon"

// ── Order metrics ────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts orders created from a cart.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed.",
	},
)

// OrderStatusUpdatesTotal counts successful status writes.
// Labels:
//   - status: the status written ("pending" or "completed")
//   - role: role of the actor ("manager" or "delivery_crew")
var OrderStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_updates_total",
		Help:      "Total number of order status updates, by resulting status and actor role.",
	},
	[]string{"status", "role"},
)

// OrderCrewAssignmentsTotal counts delivery crew assignments.
var OrderCrewAssignmentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_crew_assignments_total",
		Help:      "Total number of delivery crew assignments.",
	},
)

// ── Request outcome metrics ──────────────────────────────────────────────────

// RequestErrorsTotal counts error responses by kind.
// Label:
//   - kind: "validation", "forbidden", "not_found", "conflict", "unauthenticated" or "internal"
var RequestErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_errors_total",
		Help:      "Total number of error responses, labelled by error kind.",
	},
	[]string{"kind"},
)

// ── Identity metrics ─────────────────────────────────────────────────────────

// RoleCacheTotal counts role cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var RoleCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_cache_total",
		Help:      "Total number of role cache lookups, labelled by result (hit/miss/error).",
	},
	[]string{"result"},
)

// ── Audit trail metrics ──────────────────────────────────────────────────────

// AuditEventsTotal counts order events handled by the audit dispatcher.
// Labels:
//   - kind: "created", "status_changed" or "crew_assigned"
//   - result: "stored", "error" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of order audit events, by kind and outcome.",
	},
	[]string{"kind", "result"},
)

// AuditQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of events pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteDuration measures how long persisting a single audit event takes.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of audit event persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)
