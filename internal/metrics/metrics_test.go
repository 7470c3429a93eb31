package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsExposure(t *testing.T) {
	ObserveRecommendation("computed", time.Now().Add(-20*time.Millisecond), 4)
	ObserveAssessment(85, true)
	ObserveRescore("completed", time.Now().Add(-time.Second))
	ObserveHTTP(http.MethodGet, "/health", http.StatusOK, time.Now())
	LearningSupportTriggered.Inc()
	RateLimited.Inc()
	ObserveCache("hit")
	WSClients.Set(2)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, m := range []string{
		"techsync_recommendations_total",
		"techsync_recommendation_duration_seconds",
		"techsync_assessments_total",
		"techsync_assessment_score",
		"techsync_learning_support_triggered_total",
		"techsync_rescore_runs_total",
		"techsync_http_requests_total",
		"techsync_rate_limited_total",
		"techsync_cache_lookups_total",
		"techsync_ws_clients",
	} {
		if !strings.Contains(body, m) {
			t.Fatalf("expected metric %s in body", m)
		}
	}
}

func TestRegister_ToleratesDuplicate(t *testing.T) {
	newCollector := func() prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "techsync_test_register_gauge",
			Help: "test only",
		}, func() float64 { return 1 })
	}
	if err := Register(newCollector()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := Register(newCollector()); err != nil {
		t.Fatalf("second register should be tolerated: %v", err)
	}
}
