// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vitrine_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// SessionOps counts session store operations by kind and outcome.
	SessionOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vitrine_session_ops_total",
		Help: "Total number of session store operations",
	}, []string{"op", "outcome"})

	// ProviderCalls counts outbound calls to remote providers (payment, AI).
	ProviderCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vitrine_provider_calls_total",
		Help: "Total number of external provider calls by provider and outcome",
	}, []string{"provider", "outcome"})

	// ProviderLatency records latency of outbound provider calls.
	ProviderLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vitrine_provider_latency_seconds",
		Help:    "External provider call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})

	// UploadBytes records the size of accepted media uploads.
	UploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vitrine_upload_bytes",
		Help:    "Size in bytes of accepted feed media uploads",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
	})
)

// ObserveProviderCall records one outbound provider call.
func ObserveProviderCall(provider string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ProviderCalls.WithLabelValues(provider, outcome).Inc()
	ProviderLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
