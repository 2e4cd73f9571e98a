package worker

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	stateCompleted = "completed"
	stateFailed    = "failed"
	stateMalformed = "malformed"
)

var (
	jobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbnail_jobs_total",
			Help: "Thumbnail jobs by final state.",
		},
		[]string{"state"},
	)

	derivativesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbnail_derivatives_total",
			Help: "Thumbnail derivatives by width and result.",
		},
		[]string{"width", "result"},
	)

	jobDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "thumbnail_job_duration_seconds",
		Help:    "Time spent processing one thumbnail job.",
		Buckets: prometheus.DefBuckets,
	})
)

func observeDerivative(width int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	derivativesTotal.WithLabelValues(strconv.Itoa(width), result).Inc()
}
