// Package metrics defines and registers the custom Prometheus metrics for the
// user system. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time;
// the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fortress"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh-token exchanges by outcome.
// Label:
//   - result: "success", "expired", or "invalid"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of access-token refreshes, by result.",
	},
	[]string{"result"},
)

// AccessDenialsTotal counts authorization failures surfaced to clients.
// Label:
//   - reason: "policy" (role may never do this) or "principal_protected"
//     (the protected record forbids it regardless of role)
var AccessDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denials_total",
		Help:      "Total number of denied operations, by reason.",
	},
	[]string{"reason"},
)
