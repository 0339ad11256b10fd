// internal/api/handlers_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerpilot/internal/auth"
	"careerpilot/internal/catalog"
	"careerpilot/internal/common/logger"
	"careerpilot/internal/models"
	"careerpilot/internal/notify"
	"careerpilot/internal/quota"
	"careerpilot/internal/tracker"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeAdvisor struct {
	analysis *models.AnalysisResult
	summary  string
	question *models.PracticeSession
	feedback *models.PracticeFeedback
	support  *models.SupportResponse
	err      error
}

func (f *fakeAdvisor) ScoreResume(context.Context, string, string, string, string, string) (*models.AnalysisResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

func (f *fakeAdvisor) SummarizeJob(context.Context, string) string {
	return f.summary
}

func (f *fakeAdvisor) GeneratePracticeQuestion(context.Context, string) (*models.PracticeSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.question, nil
}

func (f *fakeAdvisor) EvaluateAnswer(context.Context, string, string) (*models.PracticeFeedback, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.feedback, nil
}

func (f *fakeAdvisor) GetCareerAdvice(context.Context, string, string) (*models.SupportResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.support, nil
}

type serverOptions struct {
	advisor Advisor
	failure tracker.FailurePolicy
	stats   models.UserStats
}

func newTestServer(t *testing.T, opts serverOptions) (*Server, *notify.Center) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if opts.advisor == nil {
		opts.advisor = &fakeAdvisor{}
	}
	if opts.stats == (models.UserStats{}) {
		opts.stats = models.UserStats{MaxPrompts: 10}
	}

	log := logger.NewTestLogger(t)
	center := notify.NewCenter()
	quotaMgr := quota.NewManager(opts.stats, nil, quota.Hooks{}, log)
	authSvc := auth.NewService(models.GuestUser(), nil, quotaMgr, center, nil, log)
	repo := tracker.NewRepository(nil, tracker.Hooks{Notify: center.Push}, opts.failure, log)

	srv := NewServer(Deps{
		Tracker: repo,
		Catalog: catalog.New(),
		Advisor: opts.advisor,
		Quota:   quotaMgr,
		Auth:    authSvc,
		Notify:  center,
		Logger:  log,
	})
	return srv, center
}

func doRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}

// ==========================
// Health & Catalog Tests
// ==========================

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "healthy", body["status"])
}

func TestServer_ListJobs_Filters(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/jobs?q=frontend", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Jobs []models.Job `json:"jobs"`
	}
	decodeBody(t, rec, &body)
	require.Len(t, body.Jobs, 1)
	assert.Equal(t, "TechFlow Solutions", body.Jobs[0].Company)
}

func TestServer_GetJob_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/jobs/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ==========================
// Save & Application Tests
// ==========================

func TestServer_SaveJob_ToggleRoundTrip(t *testing.T) {
	srv, center := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/jobs/1/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "saved", body["outcome"])

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/jobs/1/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &body)
	assert.Equal(t, "removed", body["outcome"])

	notes := center.Drain()
	require.Len(t, notes, 2)
	assert.Equal(t, "Job bookmarked to saved list.", notes[0].Message)
	assert.Equal(t, "Job removed from saved list.", notes[1].Message)
}

func TestServer_CreateApplication(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var record models.ApplicationRecord
	decodeBody(t, rec, &record)
	assert.Equal(t, models.StatusApplied, record.Status)
	assert.Equal(t, "Standard Resume", record.ResumeVersion)
}

func TestServer_CreateApplication_UnknownJob(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ListApplications_ViewFilter(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	doRequest(t, srv, http.MethodPost, "/api/v1/jobs/1/save", nil)
	doRequest(t, srv, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "2"})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/applications?view=saved", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Applications []models.ApplicationRecord `json:"applications"`
	}
	decodeBody(t, rec, &body)
	require.Len(t, body.Applications, 1)
	assert.Equal(t, models.StatusSaved, body.Applications[0].Status)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/applications?view=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_UpdateStatus_Advance(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "1"})
	var record models.ApplicationRecord
	decodeBody(t, rec, &record)

	rec = doRequest(t, srv, http.MethodPatch,
		fmt.Sprintf("/api/v1/applications/%s/status", record.ID), gin.H{"advance": true})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.ApplicationRecord
	decodeBody(t, rec, &updated)
	assert.Equal(t, models.StatusInterview, updated.Status)
}

func TestServer_UpdateStatus_UnknownStatusRejected(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "1"})
	var record models.ApplicationRecord
	decodeBody(t, rec, &record)

	rec = doRequest(t, srv, http.MethodPatch,
		fmt.Sprintf("/api/v1/applications/%s/status", record.ID), gin.H{"status": "Ghosted"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_UpdateStatus_ArchiveFailureSurfacesConflict(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{failure: tracker.FixedFailure(true)})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "1"})
	var record models.ApplicationRecord
	decodeBody(t, rec, &record)

	rec = doRequest(t, srv, http.MethodPatch,
		fmt.Sprintf("/api/v1/applications/%s/status", record.ID), gin.H{"status": "Archived"})
	require.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Database timeout. Try again.", body["error"])

	// the record survives the failed archive and carries the error string
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/applications", nil)
	var list struct {
		Applications []models.ApplicationRecord `json:"applications"`
	}
	decodeBody(t, rec, &list)
	require.Len(t, list.Applications, 1)
	assert.Equal(t, "Database timeout. Try again.", list.Applications[0].Error)
}

func TestServer_DeleteApplication_Archives(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{failure: tracker.FixedFailure(true)})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "1"})
	var record models.ApplicationRecord
	decodeBody(t, rec, &record)

	// DELETE bypasses the transient failure injection entirely
	rec = doRequest(t, srv, http.MethodDelete, "/api/v1/applications/"+record.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/applications", nil)
	var list struct {
		Applications []models.ApplicationRecord `json:"applications"`
	}
	decodeBody(t, rec, &list)
	assert.Empty(t, list.Applications)
}

// ==========================
// Gesture Tests
// ==========================

func TestServer_ApplyGesture_DragRightAdvances(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "1"})
	var record models.ApplicationRecord
	decodeBody(t, rec, &record)

	rec = doRequest(t, srv, http.MethodPost,
		fmt.Sprintf("/api/v1/applications/%s/gesture", record.ID), gin.H{
			"events": []gin.H{
				{"type": "press", "x": 0},
				{"type": "move", "x": 150, "delayMs": 50},
				{"type": "release", "delayMs": 20},
			},
		})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "advance", body["action"])

	updated, ok := srv.tracker.Get(record.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusInterview, updated.Status)
}

func TestServer_ApplyGesture_LongPressResolvesToNothing(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "1"})
	var record models.ApplicationRecord
	decodeBody(t, rec, &record)

	rec = doRequest(t, srv, http.MethodPost,
		fmt.Sprintf("/api/v1/applications/%s/gesture", record.ID), gin.H{
			"events": []gin.H{
				{"type": "press", "x": 0},
				{"type": "release", "delayMs": 700},
			},
		})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "none", body["action"])

	updated, ok := srv.tracker.Get(record.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusApplied, updated.Status)
}

func TestServer_ApplyGesture_UnknownRecord(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/applications/missing/gesture", gin.H{
		"events": []gin.H{{"type": "press", "x": 0}},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ==========================
// Insights Tests
// ==========================

func TestServer_Insights_PlaceholderBelowSample(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	doRequest(t, srv, http.MethodPost, "/api/v1/applications", gin.H{"jobId": "1"})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/insights", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, false, body["ready"])
}

// ==========================
// Advisor Tests
// ==========================

func TestServer_AdvisorAnalyze_Success(t *testing.T) {
	advisor := &fakeAdvisor{analysis: &models.AnalysisResult{Score: 82, Status: "READY"}}
	srv, center := newTestServer(t, serverOptions{advisor: advisor})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/advisor/analyze", gin.H{
		"jobId":      "1",
		"resumeText": "resume body",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.AnalysisResult
	decodeBody(t, rec, &result)
	assert.Equal(t, float64(82), result.Score)

	history := srv.quota.History()
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionAnalyze, history[0].Action)
	assert.Equal(t, "Analyzed resume for Senior Frontend Engineer at TechFlow Solutions", history[0].Prompt)

	notes := center.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Agent Report Generated: Ready for review.", notes[0].Message)
}

func TestServer_AdvisorAnalyze_QuotaExceeded(t *testing.T) {
	advisor := &fakeAdvisor{analysis: &models.AnalysisResult{}}
	srv, center := newTestServer(t, serverOptions{
		advisor: advisor,
		stats:   models.UserStats{PromptsToday: 10, MaxPrompts: 10},
	})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/advisor/analyze", gin.H{
		"jobId":      "1",
		"resumeText": "resume body",
	})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Empty(t, srv.quota.History())

	notes := center.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "AI Rate Limit: Daily quota exceeded.", notes[0].Message)
}

func TestServer_AdvisorSummarize_ByJobID(t *testing.T) {
	advisor := &fakeAdvisor{summary: "- bullet one\n- bullet two"}
	srv, center := newTestServer(t, serverOptions{advisor: advisor})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/advisor/summarize", gin.H{"jobId": "2"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "- bullet one\n- bullet two", body["summary"])

	history := srv.quota.History()
	require.Len(t, history, 1)
	assert.Equal(t, "Summarized Staff Software Developer", history[0].Prompt)

	notes := center.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Scan Report available in History.", notes[0].Message)
}

func TestServer_AdvisorSummarize_RequiresInput(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/advisor/summarize", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_AdvisorPracticeFlow(t *testing.T) {
	advisor := &fakeAdvisor{
		question: &models.PracticeSession{Question: "Describe a rate limiter design.", Category: "System Design", Difficulty: "Medium"},
		feedback: &models.PracticeFeedback{Score: 74},
	}
	srv, _ := newTestServer(t, serverOptions{advisor: advisor})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/advisor/practice/question", gin.H{"context": "backend"})
	require.Equal(t, http.StatusOK, rec.Code)

	var session models.PracticeSession
	decodeBody(t, rec, &session)
	assert.Equal(t, "Medium", session.Difficulty)

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/advisor/practice/answer", gin.H{
		"question": session.Question,
		"answer":   "Token bucket per client.",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, srv.quota.History(), 2)
	assert.Equal(t, 2, srv.quota.Stats().PromptsToday)
}

func TestServer_AdvisorSupport(t *testing.T) {
	advisor := &fakeAdvisor{support: &models.SupportResponse{
		ResumeFeedback: models.ResumeFeedback{
			Suggestions: []models.ResumeSuggestion{{Text: "Quantify impact.", Section: "experience", Severity: "medium"}},
		},
	}}
	srv, _ := newTestServer(t, serverOptions{advisor: advisor})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/advisor/support", gin.H{
		"resumeText": "resume body",
		"targetRole": "Backend Engineer",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	history := srv.quota.History()
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionSupport, history[0].Action)
	assert.Equal(t, "Career support for Backend Engineer", history[0].Prompt)
}

// ==========================
// Auth, History & Debug Tests
// ==========================

func TestServer_Login_Flow(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	decodeBody(t, rec, &user)
	assert.True(t, user.IsLoggedIn)
	assert.Equal(t, "jane", user.Name)

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &user)
	assert.False(t, user.IsLoggedIn)
}

func TestServer_Login_ShortPassword(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_History_ReturnsStatsAndEntries(t *testing.T) {
	advisor := &fakeAdvisor{summary: "summary"}
	srv, _ := newTestServer(t, serverOptions{advisor: advisor})

	doRequest(t, srv, http.MethodPost, "/api/v1/advisor/summarize", gin.H{"jobId": "1"})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Stats   models.UserStats   `json:"stats"`
		History []models.PromptLog `json:"history"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, 1, body.Stats.PromptsToday)
	require.Len(t, body.History, 1)
}

func TestServer_Notifications_DrainEmptiesQueue(t *testing.T) {
	srv, _ := newTestServer(t, serverOptions{})

	doRequest(t, srv, http.MethodPost, "/api/v1/jobs/1/save", nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Notifications []models.Notification `json:"notifications"`
	}
	decodeBody(t, rec, &body)
	require.Len(t, body.Notifications, 1)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/notifications", nil)
	decodeBody(t, rec, &body)
	assert.Empty(t, body.Notifications)
}

func TestServer_DebugSeeds(t *testing.T) {
	srv, center := newTestServer(t, serverOptions{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/debug/seed-applications", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	decodeBody(t, rec, &body)
	assert.Equal(t, 50, body["count"])

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/debug/seed-history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, srv.quota.History(), 3)

	notes := center.Drain()
	require.Len(t, notes, 2)
	assert.Equal(t, "Debug: 50 demo records injected.", notes[0].Message)
	assert.Equal(t, "Audit trail seeded with 3 entries", notes[1].Message)
}
