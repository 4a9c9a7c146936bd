// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	BedrockInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bedrock_invocations_total",
			Help: "Total number of Bedrock model invocations",
		},
		[]string{"mode", "status"},
	)

	BedrockDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bedrock_invocation_duration_seconds",
			Help:    "Duration of Bedrock model invocations in seconds",
			Buckets: []float64{0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"mode"},
	)

	IndexLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gva_index_loads_total",
			Help: "Total number of GVA open-data index loads",
		},
		[]string{"dataset", "status"},
	)

	IndexEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gva_index_entries",
			Help: "Number of entries in the loaded GVA index",
		},
		[]string{"dataset"},
	)
)
