package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	briefingRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qbit_briefing_requests_total",
		Help: "Briefing generation requests by outcome.",
	}, []string{"outcome"})

	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "qbit_generation_duration_seconds",
		Help:    "Wall time of briefing generation, cache hits included.",
		Buckets: []float64{0.05, 0.5, 1, 5, 15, 30, 60, 120},
	})

	shareCreates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qbit_share_creates_total",
		Help: "Share create calls by outcome.",
	}, []string{"outcome"})

	shareGets = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qbit_share_gets_total",
		Help: "Share resolve calls by outcome.",
	}, []string{"outcome"})
)

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return "error"
}
