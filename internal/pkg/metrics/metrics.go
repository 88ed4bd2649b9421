// Package metrics defines the custom Prometheus metrics of the marketplace
// API. Metrics are registered with the default registry on import and are
// served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Credential metrics ────────────────────────────────────────────────────────

// OtpIssued counts verification codes stored and queued for delivery.
var OtpIssued = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of verification codes issued.",
	},
)

// OtpVerifications counts verification attempts.
// Label:
//   - outcome: "success", "invalid", "expired", "already_verified" or "error"
var OtpVerifications = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of verification code checks, by outcome.",
	},
	[]string{"outcome"},
)

// ResetTokens counts password reset token operations.
// Labels:
//   - op: "issued" or "consumed"
//   - outcome: "success", "invalid" or "error"
var ResetTokens = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_tokens_total",
		Help:      "Total number of password reset token operations.",
	},
	[]string{"op", "outcome"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrderTransitions counts status update requests.
// Labels:
//   - to: requested status
//   - outcome: "success", "rejected", "forbidden" or "error"
var OrderTransitions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of order status updates, by target status and outcome.",
	},
	[]string{"to", "outcome"},
)

// OrdersCreated counts newly placed orders.
var OrdersCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// Notifications counts outbound mail by result.
// Label:
//   - result: "sent", "failed" or "dropped"
var Notifications = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notifications, by delivery result.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks notifications waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationSendDuration measures mail delivery latency.
var NotificationSendDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_send_duration_seconds",
		Help:      "Duration of a single mail delivery attempt.",
		Buckets:   prometheus.DefBuckets,
	},
)
