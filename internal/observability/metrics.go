// Package observability provides Prometheus metrics for the application.
package observability

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "writoria_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ChatUpstreamRequests counts assistant backend calls by backend and outcome.
	ChatUpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "writoria_chat_upstream_requests_total",
		Help: "Total assistant backend requests by backend and outcome",
	}, []string{"backend", "outcome"})

	// ContactRelayRequests counts contact relay submissions by outcome.
	ContactRelayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "writoria_contact_relay_requests_total",
		Help: "Total contact relay submissions by outcome",
	}, []string{"outcome"})
)

// InitMetrics creates the fiberprometheus middleware that records HTTP
// request metrics under the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
