package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bazaar_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code.",
		},
		[]string{"route", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bazaar_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	negotiationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bazaar_negotiation_outcomes_total",
			Help: "Evaluated offers by result status.",
		},
		[]string{"status"},
	)

	chatReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bazaar_chat_replies_total",
			Help: "Chat replies by kind.",
		},
		[]string{"kind"},
	)
)
