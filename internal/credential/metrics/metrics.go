package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeAvailable = "available"
	OutcomeError     = "error"
)

type Metrics struct {
	GenerationsStarted   *prometheus.CounterVec
	GenerationsFinished  *prometheus.CounterVec
	GenerationDuration   prometheus.Histogram
	EligibleLearners     *prometheus.CounterVec
	AlreadyCredentialed  *prometheus.CounterVec
	NotificationFailures prometheus.Counter
	ConfigurationRuns    *prometheus.CounterVec
}

// New registers the pipeline metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GenerationsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecred_generations_started_total",
			Help: "Credential generation attempts by credential type",
		}, []string{"credential_type"}),
		GenerationsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecred_generations_finished_total",
			Help: "Credential generation attempts by credential type and outcome",
		}, []string{"credential_type", "outcome"}),
		GenerationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "coursecred_generation_duration_seconds",
			Help:    "Duration of a single learner render and record",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		EligibleLearners: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecred_eligible_learners_total",
			Help: "Learners found eligible by retrieval strategies",
		}, []string{"credential_type"}),
		AlreadyCredentialed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecred_already_credentialed_total",
			Help: "Eligible learners skipped because they already hold a credential",
		}, []string{"credential_type"}),
		NotificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "coursecred_notification_failures_total",
			Help: "Generation notifications that could not be delivered",
		}),
		ConfigurationRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecred_configuration_runs_total",
			Help: "Configuration generation runs by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncrementStarted(credentialType string) {
	m.GenerationsStarted.WithLabelValues(credentialType).Inc()
}

func (m *Metrics) ObserveFinished(credentialType, outcome string, start time.Time) {
	m.GenerationsFinished.WithLabelValues(credentialType, outcome).Inc()
	m.GenerationDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) AddEligible(credentialType string, eligible, skipped int) {
	m.EligibleLearners.WithLabelValues(credentialType).Add(float64(eligible))
	m.AlreadyCredentialed.WithLabelValues(credentialType).Add(float64(skipped))
}

func (m *Metrics) IncrementNotificationFailure() {
	m.NotificationFailures.Inc()
}

func (m *Metrics) IncrementConfigurationRun(outcome string) {
	m.ConfigurationRuns.WithLabelValues(outcome).Inc()
}
