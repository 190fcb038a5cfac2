package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trivia"

// Quiz outcome label values.
const (
	QuizServed    = "served"
	QuizExhausted = "exhausted"
	QuizFailed    = "failed"
)

// Metrics groups the collectors the API reports.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	QuizOutcomes        *prometheus.CounterVec
	QuestionsByCategory *prometheus.GaugeVec
	RateLimited         prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		QuizOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_requests_total",
			Help:      "Quiz draws by outcome.",
		}, []string{"outcome"}),
		QuestionsByCategory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "questions",
			Help:      "Questions stored per category.",
		}, []string{"category"}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}
	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.QuizOutcomes,
		m.QuestionsByCategory,
		m.RateLimited,
	)
	return m
}

// ObserveQuiz counts one quiz draw.
func (m *Metrics) ObserveQuiz(outcome string) {
	if m == nil {
		return
	}
	m.QuizOutcomes.WithLabelValues(outcome).Inc()
}
