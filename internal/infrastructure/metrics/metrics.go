package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Failure stages for EstimatesFailed.
const (
	StageNormalize = "normalize"
	StageModel     = "model"
	StageParse     = "parse"
	StagePersist   = "persist"
)

var (
	EstimatesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "estimates_created_total",
			Help: "Total number of estimates persisted",
		},
	)

	EstimatesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimates_failed_total",
			Help: "Total number of estimate pipelines that failed, by stage",
		},
		[]string{"stage"},
	)

	ModelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "estimate_model_call_duration_seconds",
			Help:    "Duration of vision model calls in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)

	NotificationsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimate_notifications_dropped_total",
			Help: "Events dropped because a subscriber buffer was full or the backend failed",
		},
		[]string{"kind"},
	)

	RealtimeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "realtime_connections_active",
			Help: "Number of open realtime subscriptions",
		},
	)
)
