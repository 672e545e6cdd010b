package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "strnadel", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "strnadel", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "strnadel", Name: "store_operations_total", Help: "Document store operations by collection, operation and result."},
		[]string{"collection", "op", "result"},
	)
	StoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "strnadel", Name: "store_operation_seconds", Help: "Latency of document store operations.", Buckets: prometheus.DefBuckets},
		[]string{"collection", "op"},
	)
	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "strnadel", Name: "listing_cache_requests_total", Help: "Listing cache lookups by collection and outcome."},
		[]string{"collection", "outcome"},
	)
	InquiriesReceived = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "strnadel", Name: "inquiries_received_total", Help: "Inquiries stored successfully."},
	)
	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "strnadel", Name: "validation_failures_total", Help: "Rejected request payloads by route."},
		[]string{"route"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(StoreOperations)
	reg.MustRegister(StoreLatency)
	reg.MustRegister(CacheRequests)
	reg.MustRegister(InquiriesReceived)
	reg.MustRegister(ValidationFailures)
}
