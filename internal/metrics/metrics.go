// Package metrics registers the Prometheus instruments for the approval
// workflow. Everything lives on the default registry and is served through
// the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"clientboard/internal/workflow"
)

var (
	ApprovalLinksIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clientboard_approval_links_issued_total",
		Help: "Number of public approval links issued.",
	})

	ExpiredLinkHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clientboard_expired_link_hits_total",
		Help: "Number of reads that found an approval link past its expiry.",
	})

	PublicActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clientboard_public_actions_total",
		Help: "Public approval actions by requested status and outcome.",
	}, []string{"action", "outcome"})
)

// Outcome renders an error as a metric label: "success" for nil, the
// workflow kind when classified, "error" otherwise.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	if kind := workflow.KindOf(err); kind != workflow.KindUnknown {
		return string(kind)
	}
	return "error"
}
