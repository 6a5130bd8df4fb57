package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/access"
)

var (
	accessDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "access",
		Subsystem: "engine",
		Name:      "decisions_total",
		Help:      "Access engine decisions broken down by object type, operation and result.",
	}, []string{"object", "operation", "result"})
)

func recordDecision(object, operation string, d access.Decision) {
	result := "allowed"
	if !d.Allowed {
		result = "denied_" + string(d.Reason)
	}
	accessDecisions.With(prometheus.Labels{
		"object":    object,
		"operation": operation,
		"result":    result,
	}).Inc()
}
