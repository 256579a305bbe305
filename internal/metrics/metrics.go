package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "easylease_admin",
		Name:      "backend_requests_total",
		Help:      "Requests issued to the listings backend, by route and outcome.",
	}, []string{"method", "route", "status"})

	backendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "easylease_admin",
		Name:      "backend_request_duration_seconds",
		Help:      "Latency of requests to the listings backend.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	pageRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "easylease_admin",
		Name:      "http_requests_total",
		Help:      "Dashboard requests served, by method and status code.",
	}, []string{"method", "status"})
)

// ObserveBackend records one backend call. status is 0 when the request never got a response.
func ObserveBackend(method, route string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	backendRequests.WithLabelValues(method, route, label).Inc()
	backendDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObservePage records one served dashboard request.
func ObservePage(method string, status int) {
	pageRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
