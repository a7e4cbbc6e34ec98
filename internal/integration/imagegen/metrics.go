package imagegen

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verne_imagegen_requests_total",
			Help: "Total number of image generation requests to the provider.",
		},
		[]string{"status"},
	)
	generationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "verne_imagegen_request_duration_seconds",
			Help:    "Histogram of image generation request durations.",
			Buckets: prometheus.DefBuckets,
		},
	)
)
