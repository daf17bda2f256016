// Package metrics defines and registers the custom Prometheus metrics of the
// back-office API. It is the single source of truth for metric names, labels,
// and help strings. HTTP request metrics come from the echoprometheus
// middleware and are not declared here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Labels:
//   - kind: "admin" or "agent"
//   - result: "success", "invalid_credentials" or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by identity kind and result.",
	},
	[]string{"kind", "result"},
)

// AuthRejectionsTotal counts requests refused by the auth middleware.
// Label:
//   - reason: "missing", "invalid", "expired" or "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or role checks.",
	},
	[]string{"reason"},
)

// PasswordResetsTotal counts password recovery steps.
// Label:
//   - stage: "requested" or "completed"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset requests and completions.",
	},
	[]string{"stage"},
)

// MailFailuresTotal counts messages the mailer could not deliver.
var MailFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_failures_total",
		Help:      "Total number of outbound mails that failed to send.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsCreatedTotal counts stored notification records (one per recipient).
// Label:
//   - type: the notification type (e.g. "property-added")
var NotificationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Total number of notification records created, by type.",
	},
	[]string{"type"},
)

// NotificationOpsTotal counts recipient-side mutations.
// Label:
//   - op: "mark_read", "mark_all_read", "delete" or "clear_all"
var NotificationOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_ops_total",
		Help:      "Total number of notification read/delete operations, by operation.",
	},
	[]string{"op"},
)

// NotifyFailuresTotal counts domain-event broadcasts that could not be stored.
var NotifyFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notify_failures_total",
		Help:      "Total number of domain-event notification broadcasts that failed.",
	},
)

// ── Public intake metrics ─────────────────────────────────────────────────────

// SubmissionsTotal counts public form submissions.
// Label:
//   - form: "contact" or "property_request"
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of public form submissions stored, by form.",
	},
	[]string{"form"},
)
