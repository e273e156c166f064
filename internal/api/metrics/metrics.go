// Package metrics defines and registers all custom Prometheus metrics for the
// banque API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "banque"

// ── Account operation metrics ─────────────────────────────────────────────────

// OperationsTotal counts account operations by result.
// Labels:
//   - operation: deposit, withdraw, transfer, set_pin, freeze, unfreeze, ...
//   - outcome: "ok" or the rejection kind (e.g. "insufficient_funds", "frozen")
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of account operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// AccountsCreatedTotal counts opened personal accounts.
// Label:
//   - tier: "savings", "checking" or "premium"
var AccountsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of personal accounts opened, by tier.",
	},
	[]string{"tier"},
)

// TransferAmount observes the amount of every successful transfer, in euros.
var TransferAmount = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "transfer_amount",
		Help:      "Distribution of successful transfer amounts in euros.",
		Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000, 100000},
	},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of entries waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of ledger entries pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit decisions.
// Label:
//   - result: "inserted", "duplicate", "failed" or "dropped" (queue full)
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of ledger entries handled by the audit trail, by result.",
	},
	[]string{"result"},
)

// AuditProcessingDuration measures how long one entry takes from dequeue to
// persistence.
var AuditProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_processing_duration_seconds",
		Help:      "Duration of audit entry processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)
