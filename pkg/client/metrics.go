package client

import (
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const clientMetricsNamespace = "wavestx_client"

var (
	metricRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: clientMetricsNamespace,
			Name:      "requests_total",
			Help:      "Node HTTP API requests made by the client",
		},
		[]string{"method", "route", "status"},
	)

	metricRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: clientMetricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "Node HTTP API request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	metricWaitAttempts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: clientMetricsNamespace,
			Name:      "wait_attempts_total",
			Help:      "Polls made while waiting for transactions to be confirmed",
		},
	)
)

func init() {
	prometheus.MustRegister(
		metricRequests,
		metricRequestDuration,
		metricWaitAttempts,
	)
}

// route keeps the first two segments of the API path relative to the node base URL,
// so IDs and addresses do not end up in label values.
func route(baseUrl, path string) string {
	if base, err := url.Parse(baseUrl); err == nil {
		path = strings.TrimPrefix(path, strings.TrimSuffix(base.Path, "/"))
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) > 2 {
		segments = segments[:2]
	}
	return "/" + strings.Join(segments, "/")
}

func observeRequest(method, route, status string, start time.Time) {
	metricRequests.WithLabelValues(method, route, status).Inc()
	metricRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
