// Package metrics defines the custom Prometheus metrics of the waitlist API.
// Metrics are registered with the default registry on package init through
// promauto and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "waitlist"

// ── Submission metrics ────────────────────────────────────────────────────────

// SubmissionsCreatedTotal counts stored submissions.
// Label:
//   - kind: "customer" or "merchant"
var SubmissionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_created_total",
		Help:      "Total number of submissions stored, by kind.",
	},
	[]string{"kind"},
)

// SubmissionsRejectedTotal counts submissions that were not stored.
// Labels:
//   - kind: "customer", "merchant", or "unknown" when the type was invalid
//   - reason: "validation", "duplicate", or "storage"
var SubmissionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_rejected_total",
		Help:      "Total number of submissions rejected, by kind and reason.",
	},
	[]string{"kind", "reason"},
)

// ── Rate limit metrics ────────────────────────────────────────────────────────

// RateLimitRejectionsTotal counts requests refused by a rate limit policy.
// Label:
//   - policy: "general" or "submit"
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_rejections_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
	[]string{"policy"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts notifier outcomes.
// Label:
//   - result: "sent", "failed", or "dropped" (queue full)
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of submission notifications, by result.",
	},
	[]string{"result"},
)

// NotifyQueueDepth tracks jobs waiting for a notifier worker.
var NotifyQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of notifications waiting in the dispatcher queue.",
	},
)
