package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "roast_agent"

var (
	// RoastRequestsTotal counts finished roast pipelines by outcome
	// ("success" or an error kind).
	RoastRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roast_requests_total",
		Help:      "Roast pipeline runs by outcome.",
	}, []string{"outcome"})

	// StageDuration observes the latency of each pipeline stage.
	StageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Latency of roast pipeline stages.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
	}, []string{"stage"})

	// SuiRPCCallsTotal counts Sui JSON-RPC calls by method and status.
	SuiRPCCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sui_rpc_calls_total",
		Help:      "Sui JSON-RPC calls by method and status.",
	}, []string{"network", "method", "status"})

	// GenerationCallsTotal counts text-generation API calls by status.
	GenerationCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generation_calls_total",
		Help:      "Text generation API calls by status.",
	}, []string{"model", "status"})

	registerOnce sync.Once
)

// MustRegisterMetrics registers all collectors with reg once per process.
func MustRegisterMetrics(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(
			RoastRequestsTotal,
			StageDuration,
			SuiRPCCallsTotal,
			GenerationCallsTotal,
		)
	})
}
