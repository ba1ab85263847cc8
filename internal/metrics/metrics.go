// Package metrics declares the process-wide Prometheus collectors served on
// /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "yamdb"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_active_requests",
			Help:      "Number of requests currently being served",
		},
	)

	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Requests rejected by the rate limiter, by route",
		},
		[]string{"route"},
	)

	// DomainEvents counts business events such as "review_created" or
	// "token_issued".
	DomainEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Business events by name",
		},
		[]string{"event"},
	)
)

// Well-known DomainEvents label values.
const (
	EventSignUp           = "signup"
	EventCodeResent       = "confirmation_code_resent"
	EventTokenIssued      = "token_issued"
	EventTokenRejected    = "token_rejected"
	EventTitleCreated     = "title_created"
	EventReviewCreated    = "review_created"
	EventReviewRejected   = "review_duplicate_rejected"
	EventCommentCreated   = "comment_created"
	EventUserCreated      = "user_created"
	EventPermissionDenied = "permission_denied"
)

// RecordAPIRequest records one finished request. route is the route
// template, never the raw path, to bound label cardinality.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(start bool) {
	if start {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

func RecordRateLimitHit(route string) {
	RateLimitHits.WithLabelValues(route).Inc()
}

func RecordEvent(event string) {
	DomainEvents.WithLabelValues(event).Inc()
}
