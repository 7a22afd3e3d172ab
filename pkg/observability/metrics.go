// Package observability provides Prometheus metrics for the gateway client,
// the mood cache and the local emotion server.
//
// All helpers are nil-safe so components can run without metrics wired.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "moodlog"

// Metrics holds every collector registered by moodlog.
type Metrics struct {
	GatewayRequests *prometheus.CounterVec
	GatewayLatency  *prometheus.HistogramVec
	ServerRequests  *prometheus.CounterVec
	CachedDays      prometheus.Gauge
}

// NewMetrics registers the collectors with reg. Pass a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GatewayRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Remote emotion service calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		GatewayLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Remote emotion service call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		ServerRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "server",
			Name:      "requests_total",
			Help:      "Requests served by the local emotion server.",
		}, []string{"route", "status"}),
		CachedDays: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "days",
			Help:      "Calendar days currently held by the mood cache.",
		}),
	}
}

// ObserveGateway records one gateway call.
func (m *Metrics) ObserveGateway(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.GatewayRequests.WithLabelValues(op, outcome).Inc()
	m.GatewayLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// ObserveServer records one served request.
func (m *Metrics) ObserveServer(route string, status int) {
	if m == nil {
		return
	}
	m.ServerRequests.WithLabelValues(route, statusClass(status)).Inc()
}

// SetCachedDays publishes the cache size.
func (m *Metrics) SetCachedDays(n int) {
	if m == nil {
		return
	}
	m.CachedDays.Set(float64(n))
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
