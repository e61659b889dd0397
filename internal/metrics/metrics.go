package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prism",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prism",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by path.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "prism",
			Name:      "bookings_created_total",
			Help:      "Bookings created.",
		},
	)

	bookingsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "prism",
			Name:      "bookings_cancelled_total",
			Help:      "Bookings cancelled.",
		},
	)

	starsToggled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prism",
			Name:      "stars_toggled_total",
			Help:      "Star toggles by content type and resulting state.",
		},
		[]string{"content_type", "state"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, bookingsCreated, bookingsCancelled, starsToggled)
	})
}

// ObserveHTTP records one completed HTTP request.
func ObserveHTTP(method, path, status string, seconds float64) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(path).Observe(seconds)
}

// IncBookingCreated increments the created-bookings counter.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncBookingCancelled increments the cancelled-bookings counter.
func IncBookingCancelled() {
	bookingsCancelled.Inc()
}

// IncStarToggled records a star toggle outcome.
func IncStarToggled(contentType string, starred bool) {
	state := "unstarred"
	if starred {
		state = "starred"
	}
	starsToggled.WithLabelValues(contentType, state).Inc()
}
