// Package metrics defines and registers all custom Prometheus metrics for the
// certificate API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "certificate"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// ── Certificate metrics ───────────────────────────────────────────────────────

// CertificatesTransitionedTotal counts successful status changes.
// Label:
//   - status: the new status ("SIGNED" or "APPROVED")
var CertificatesTransitionedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Total number of certificate status transitions, by new status.",
	},
	[]string{"status"},
)

// VerificationsTotal counts verification requests.
// Label:
//   - result: "legit" or "not_legit"
var VerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verifications_total",
		Help:      "Total number of certificate verifications, by result.",
	},
	[]string{"result"},
)

// VerifyCacheTotal counts verification cache lookups.
// Label:
//   - result: "hit" or "miss"
var VerifyCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verify_cache_total",
		Help:      "Total number of verification cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// LedgerQueueDepth tracks the number of anchor jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var LedgerQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ledger_queue_depth",
		Help:      "Current number of anchor jobs pending in each ledger worker channel.",
	},
	[]string{"worker_id"},
)

// LedgerAnchorDuration measures how long writing one ledger entry takes.
// Label:
//   - result: "ok" or "error"
var LedgerAnchorDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ledger_anchor_duration_seconds",
		Help:      "Duration of anchoring a signed certificate digest.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
