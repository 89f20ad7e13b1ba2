// Package metrics defines and registers the custom Prometheus metrics of the
// boards API. It is the single source of truth for metric names, labels and
// help strings.
//
// All metrics register with the default registry at package init through
// promauto and are served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "boards"

// Login outcomes.
const (
	OutcomeSuccess             = "success"
	OutcomeInvalidCredentials  = "invalid_credentials"
	OutcomeRoleUnavailable     = "role_unavailable"
	OutcomeExternalRejected    = "external_rejected"
	OutcomeExternalUnavailable = "external_unavailable"
	OutcomeError               = "error"
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: one of the Outcome* constants
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ExternalAuthDuration measures calls to the legacy identity service.
// Label:
//   - result: "accepted", "rejected" or "unavailable"
var ExternalAuthDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "external_duration_seconds",
		Help:      "Latency of the external identity service, by result.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// AccessDeniedTotal counts requests stopped by the access-control middleware.
// Label:
//   - reason: "missing_token", "invalid_token", "forbidden_role" or "rate_limited"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by authentication, authorization or rate limiting.",
	},
	[]string{"reason"},
)
