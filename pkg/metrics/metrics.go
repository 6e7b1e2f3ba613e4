package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusTransitions counts accepted job status transitions partitioned by
// origin and target column.
var StatusTransitions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "jobboard_status_transitions_total",
		Help: "Number of accepted job status transitions partitioned by from and to status.",
	}, []string{"from", "to"})

// JobsCreated counts successfully created jobs.
var JobsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "jobboard_jobs_created_total",
		Help: "Number of jobs created.",
	})

// RejectedMoves counts rejected status updates partitioned by reason.
var RejectedMoves = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "jobboard_rejected_moves_total",
		Help: "Number of rejected job status updates partitioned by reason.",
	}, []string{"reason"})

type PrometheusMetricsHandler struct{}

func NewPrometheusMetricsHandler() *PrometheusMetricsHandler {
	return &PrometheusMetricsHandler{}
}

func (p *PrometheusMetricsHandler) Handler() http.Handler {
	return promhttp.Handler()
}
