package workqueue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Submitted *prometheus.CounterVec
	Processed *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
	InFlight  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecred_workqueue_submitted_total",
			Help: "Tasks submitted by task name",
		}, []string{"task"}),
		Processed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecred_workqueue_processed_total",
			Help: "Tasks processed by task name and result",
		}, []string{"task", "result"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coursecred_workqueue_task_duration_seconds",
			Help:    "Task execution time",
			Buckets: prometheus.DefBuckets,
		}, []string{"task"}),
		InFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "coursecred_workqueue_in_flight",
			Help: "Tasks currently executing",
		}),
	}
}
