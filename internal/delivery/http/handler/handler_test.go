package handler

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"techsync/internal/delivery/http/middleware"
	"techsync/internal/domain/assessment"
	"techsync/internal/domain/matching"
	"techsync/internal/pkg/response"
	"techsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecs struct {
	got usecase.RecommendationParams
	res usecase.RecommendationResult
	err error
}

func (s *stubRecs) GetRecommendations(_ context.Context, userID uuid.UUID, p usecase.RecommendationParams) (usecase.RecommendationResult, error) {
	s.got = p
	s.res.UserID = userID
	return s.res, s.err
}

type stubScore struct {
	res usecase.ProjectScore
	err error
}

func (s *stubScore) ScoreProject(context.Context, uuid.UUID, uuid.UUID) (usecase.ProjectScore, error) {
	return s.res, s.err
}

type stubAssess struct {
	got usecase.SubmitParams
	err error
}

func (s *stubAssess) Submit(_ context.Context, p usecase.SubmitParams) (usecase.SubmissionResult, error) {
	s.got = p
	if s.err != nil {
		return usecase.SubmissionResult{}, s.err
	}
	return usecase.SubmissionResult{AttemptID: uuid.New(), Assessment: assessment.AssessmentResult{Success: true, Score: 80, Passed: true}}, nil
}

func (s *stubAssess) Evaluate(code string) assessment.AssessmentResult {
	a, _ := assessment.NewAssessor(assessment.DefaultMinPassingScore)
	return a.Assess(assessment.Submission{Code: code})
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestApp(h ...interface{ RegisterRoutes(fiber.Router) }) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	for _, x := range h {
		x.RegisterRoutes(app)
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, response.SemanticResponse) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out response.SemanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestRecommendationHandler_ParsesQuery(t *testing.T) {
	recs := &stubRecs{res: usecase.RecommendationResult{
		Recommendations: []matching.Recommendation{{ProjectID: uuid.New(), Title: "API", Score: 91}},
		Limit:           5,
	}}
	app := newTestApp(NewRecommendationHandler(recs, &stubScore{}))

	uid := uuid.New()
	status, body := doJSON(t, app, http.MethodGet, "/users/"+uid.String()+"/recommendations?limit=5&diversity=0.25", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, response.MessageOK, body.Message)
	assert.Equal(t, 5, recs.got.Limit)
	require.NotNil(t, recs.got.DiversityWeight)
	assert.InDelta(t, 0.25, *recs.got.DiversityWeight, 1e-9)

	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["total"])
	assert.Equal(t, uid.String(), data["user_id"])
}

func TestRecommendationHandler_Errors(t *testing.T) {
	recs := &stubRecs{}
	app := newTestApp(NewRecommendationHandler(recs, &stubScore{err: usecase.ErrProjectNotFound}))
	uid := uuid.New().String()

	status, _ := doJSON(t, app, http.MethodGet, "/users/not-a-uuid/recommendations", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodGet, "/users/"+uid+"/recommendations?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, status)

	recs.err = usecase.ErrUserNotFound
	status, body := doJSON(t, app, http.MethodGet, "/users/"+uid+"/recommendations", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body.Message)

	recs.err = usecase.ErrInternal
	status, body = doJSON(t, app, http.MethodGet, "/users/"+uid+"/recommendations", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, response.MessageInternalServerError, body.Message)

	status, _ = doJSON(t, app, http.MethodGet, "/users/"+uid+"/projects/"+uuid.New().String()+"/score", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAssessmentHandler_Submit(t *testing.T) {
	uc := &stubAssess{}
	app := newTestApp(NewAssessmentHandler(uc))

	uid, pid, cid := uuid.New(), uuid.New(), uuid.New()
	body := `{"user_id":"` + uid.String() + `","project_id":"` + pid.String() + `","challenge_id":"` + cid.String() + `","code":"return 1"}`
	status, resp := doJSON(t, app, http.MethodPost, "/assessments", body)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, uid, uc.got.UserID)
	assert.Equal(t, "return 1", uc.got.Code)
	data := resp.Data.(map[string]any)
	result := data["result"].(map[string]any)
	assert.Equal(t, true, result["passed"])

	status, resp = doJSON(t, app, http.MethodPost, "/assessments", `{"code":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", resp.Message)
	fields := resp.Data.(map[string]any)
	assert.Equal(t, "required", fields["userid"])

	uc.err = usecase.ErrAssessmentInProgress
	status, _ = doJSON(t, app, http.MethodPost, "/assessments", body)
	assert.Equal(t, http.StatusConflict, status)
}

func TestAssessmentHandler_EvaluateAcceptsNullCode(t *testing.T) {
	app := newTestApp(NewAssessmentHandler(&stubAssess{}))

	status, resp := doJSON(t, app, http.MethodPost, "/assessments/evaluate", `{"code":null}`)
	assert.Equal(t, http.StatusOK, status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(0), data["score"])
	assert.Equal(t, true, data["success"])
	assert.Equal(t, false, data["passed"])

	code := `"function add(a, b) {\n  if (a) {\n    for (;;) { break }\n  }\n  return a + b\n}"`
	status, resp = doJSON(t, app, http.MethodPost, "/assessments/evaluate", `{"code":`+code+`}`)
	assert.Equal(t, http.StatusOK, status)
	data = resp.Data.(map[string]any)
	assert.Equal(t, float64(100), data["score"])
	assert.NotEmpty(t, data["signals"])
}

func TestHealthHandler(t *testing.T) {
	app := newTestApp(NewHealthHandler(stubPinger{}, nil))
	status, resp := doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	checks := resp.Data.(map[string]any)
	assert.Equal(t, "up", checks["database"])
	assert.Equal(t, "disabled", checks["cache"])

	app = newTestApp(NewHealthHandler(stubPinger{err: context.DeadlineExceeded}, nil))
	status, _ = doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
