package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query pipeline metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askshelf",
			Name:      "queries_total",
			Help:      "Total queries answered, by routed intent",
		},
		[]string{"intent"},
	)

	SemanticDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "askshelf",
			Name:      "semantic_degraded_total",
			Help:      "Retrievals that fell back to lexical-only scoring",
		},
	)

	RendererFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "askshelf",
			Name:      "renderer_fallback_total",
			Help:      "Replies rendered with the deterministic fallback",
		},
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers Prometheus query metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(SemanticDegradedTotal)
	prometheus.MustRegister(RendererFallbackTotal)
	queryMetricsRegistered = true
}
