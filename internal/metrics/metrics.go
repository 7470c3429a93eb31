package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Recommendations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "techsync_recommendations_total",
		Help: "Recommendation requests by outcome",
	}, []string{"outcome"})
	RecommendationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "techsync_recommendation_duration_seconds",
		Help:    "Time to score and rank candidate projects",
		Buckets: prometheus.DefBuckets,
	})
	RecommendationResults = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "techsync_recommendation_results",
		Help:    "Number of projects returned per recommendation request",
		Buckets: prometheus.LinearBuckets(0, 5, 11),
	})
	Assessments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "techsync_assessments_total",
		Help: "Code assessments by result",
	}, []string{"result"})
	AssessmentScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "techsync_assessment_score",
		Help:    "Distribution of heuristic code scores",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})
	LearningSupportTriggered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "techsync_learning_support_triggered_total",
		Help: "Times a user crossed the failed-attempt threshold",
	})
	RescoreRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "techsync_rescore_runs_total",
		Help: "Rescore pipeline runs by status",
	}, []string{"status"})
	RescoreDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "techsync_rescore_duration_seconds",
		Help:    "Rescore pipeline duration seconds",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "techsync_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "techsync_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "techsync_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})
	WSClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "techsync_ws_clients",
		Help: "Open websocket event connections",
	})
	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "techsync_cache_lookups_total",
		Help: "Redis cache lookups by result",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(
		Recommendations,
		RecommendationDuration,
		RecommendationResults,
		Assessments,
		AssessmentScore,
		LearningSupportTriggered,
		RescoreRuns,
		RescoreDuration,
		HTTPRequests,
		HTTPDuration,
		RateLimited,
		CacheLookups,
		WSClients,
	)
}

// Register adds an extra collector, tolerating a second registration of the same one.
func Register(c prometheus.Collector) error {
	err := prometheus.Register(c)
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		return nil
	}
	return err
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveRecommendation(outcome string, start time.Time, results int) {
	Recommendations.WithLabelValues(outcome).Inc()
	if outcome == "computed" {
		RecommendationDuration.Observe(time.Since(start).Seconds())
		RecommendationResults.Observe(float64(results))
	}
}

func ObserveAssessment(score int, passed bool) {
	result := "failed"
	if passed {
		result = "passed"
	}
	Assessments.WithLabelValues(result).Inc()
	AssessmentScore.Observe(float64(score))
}

func ObserveRescore(status string, start time.Time) {
	RescoreRuns.WithLabelValues(status).Inc()
	RescoreDuration.Observe(time.Since(start).Seconds())
}

func ObserveCache(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}

func ObserveHTTP(method, route string, status int, start time.Time) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
