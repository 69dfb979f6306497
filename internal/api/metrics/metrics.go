// Package metrics defines and registers all custom Prometheus metrics for
// the restaurant gateway. It is the single source of truth for metric names,
// labels, and help strings; metrics are registered with the default registry
// via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restaurant"

// SignupsTotal counts completed registrations.
// Label:
//   - partition: the role partition written to ("user", "admin", "staff")
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful account registrations, by partition.",
	},
	[]string{"partition"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - partition: the role partition authenticated against
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by partition and result.",
	},
	[]string{"partition", "result"},
)

// GateDecisionsTotal counts session-gate outcomes on protected paths.
// Labels:
//   - partition: the partition owning the requested path
//   - outcome: "allowed" (valid session) or "redirected" (sent to login)
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of session gate decisions on protected paths.",
	},
	[]string{"partition", "outcome"},
)

// UnmatchedRequestsTotal counts requests whose path fell outside every
// declared rule set and was rejected.
var UnmatchedRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unmatched_requests_total",
		Help:      "Total number of requests rejected because no route rule matched.",
	},
)
