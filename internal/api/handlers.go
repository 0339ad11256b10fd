// internal/api/handlers.go
package api

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"careerpilot/internal/common/errors"
	"careerpilot/internal/gesture"
	"careerpilot/internal/insights"
	"careerpilot/internal/models"
	"careerpilot/internal/tracker"
)

// ==========================
// Request Types
// ==========================

type credentialsRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	ResumeText string `json:"resumeText"`
}

type createApplicationRequest struct {
	JobID         string `json:"jobId" binding:"required"`
	ResumeVersion string `json:"resumeVersion"`
}

type updateStatusRequest struct {
	Status  string `json:"status"`
	Advance bool   `json:"advance"`
}

type gestureEvent struct {
	Type    string  `json:"type" binding:"required"`
	X       float64 `json:"x"`
	DelayMs int64   `json:"delayMs"`
}

type gestureRequest struct {
	Events []gestureEvent `json:"events" binding:"required"`
}

type analyzeRequest struct {
	JobID       string `json:"jobId" binding:"required"`
	ResumeText  string `json:"resumeText" binding:"required"`
	CoverLetter string `json:"coverLetter"`
}

type summarizeRequest struct {
	JobID       string `json:"jobId"`
	Description string `json:"description"`
}

type practiceQuestionRequest struct {
	Context string `json:"context"`
}

type practiceAnswerRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

type supportRequest struct {
	ResumeText string `json:"resumeText"`
	TargetRole string `json:"targetRole"`
}

// ==========================
// Health
// ==========================

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ==========================
// Auth Handlers
// ==========================

func (s *Server) currentUser(c *gin.Context) {
	c.JSON(http.StatusOK, s.auth.Current())
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	user, err := s.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	user, err := s.auth.SignUp(c.Request.Context(), req.Email, req.Password, req.ResumeText)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) logout(c *gin.Context) {
	if err := s.auth.Logout(c.Request.Context()); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.auth.Current())
}

func (s *Server) toggleRole(c *gin.Context) {
	user, err := s.auth.ToggleRole(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ==========================
// Job Catalog Handlers
// ==========================

func (s *Server) listJobs(c *gin.Context) {
	jobs := s.catalog.Search(c.Query("q"), c.Query("type"), c.Query("location"))
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (s *Server) getJob(c *gin.Context) {
	job, ok := s.catalog.Get(c.Param("id"))
	if !ok {
		s.writeError(c, errors.NewRecordNotFoundError(c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) saveJob(c *gin.Context) {
	job, ok := s.catalog.Get(c.Param("id"))
	if !ok {
		s.writeError(c, errors.NewRecordNotFoundError(c.Param("id")))
		return
	}

	outcome, err := s.tracker.ToggleSave(c.Request.Context(), job)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome})
}

// ==========================
// Application Handlers
// ==========================

func (s *Server) createApplication(c *gin.Context) {
	var req createApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, ok := s.catalog.Get(req.JobID)
	if !ok {
		s.writeError(c, errors.NewRecordNotFoundError(req.JobID))
		return
	}

	record, err := s.tracker.LogApplication(c.Request.Context(), job, req.ResumeVersion)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (s *Server) listApplications(c *gin.Context) {
	view := tracker.View(c.Query("view"))
	switch view {
	case tracker.ViewAll, tracker.ViewSaved, tracker.ViewApplied:
	default:
		s.writeError(c, errors.NewValidationFailedError("view must be one of: saved, applied"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": s.tracker.List(view, c.Query("q"))})
}

func (s *Server) updateApplicationStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	id := c.Param("id")
	var err error
	if req.Advance {
		err = s.tracker.Advance(c.Request.Context(), id)
	} else {
		status := models.ApplicationStatus(req.Status)
		if !status.IsValid() {
			s.writeError(c, errors.NewValidationFailedError(fmt.Sprintf("unknown status %q", req.Status)))
			return
		}
		err = s.tracker.ChangeStatus(c.Request.Context(), id, status)
	}
	if err != nil {
		s.writeError(c, err)
		return
	}

	if record, ok := s.tracker.Get(id); ok {
		c.JSON(http.StatusOK, record)
		return
	}
	// archived records are gone after a successful move
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

func (s *Server) archiveApplication(c *gin.Context) {
	if err := s.tracker.Archive(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// applyGesture replays a press/move/release event stream through a gesture
// session for the record and applies the resolved action to the tracker.
// Event delays advance a virtual clock, so long presses resolve without the
// server waiting.
func (s *Server) applyGesture(c *gin.Context) {
	var req gestureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	id := c.Param("id")
	record, ok := s.tracker.Get(id)
	if !ok {
		s.writeError(c, errors.NewRecordNotFoundError(id))
		return
	}

	base := time.Now()
	var elapsed time.Duration
	session := gesture.NewSession(s.gestureCfg, record.Status, func() time.Time {
		return base.Add(elapsed)
	})

	action := gesture.ActionNone
	for _, ev := range req.Events {
		elapsed += time.Duration(ev.DelayMs) * time.Millisecond
		switch ev.Type {
		case "press":
			session.Press(ev.X)
		case "move":
			session.Move(ev.X)
		case "release":
			action = session.Release()
		default:
			s.writeError(c, errors.NewValidationFailedError(fmt.Sprintf("unknown gesture event %q", ev.Type)))
			return
		}
	}

	var err error
	switch action {
	case gesture.ActionAdvance:
		err = s.tracker.Advance(c.Request.Context(), id)
	case gesture.ActionApply:
		_, err = s.tracker.LogApplication(c.Request.Context(), record.Job, "")
	case gesture.ActionArchive:
		err = s.tracker.ChangeStatus(c.Request.Context(), id, models.StatusArchived)
	case gesture.ActionUnsave:
		err = s.tracker.Unsave(c.Request.Context(), id)
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"action": action})
}

// ==========================
// Insights
// ==========================

func (s *Server) getInsights(c *gin.Context) {
	c.JSON(http.StatusOK, insights.Compute(s.tracker.All()))
}

// ==========================
// Advisor Handlers
// ==========================

func (s *Server) advisorAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, ok := s.catalog.Get(req.JobID)
	if !ok {
		s.writeError(c, errors.NewRecordNotFoundError(req.JobID))
		return
	}

	role, ok := s.gateAdvisor(c)
	if !ok {
		return
	}

	result, err := s.advisor.ScoreResume(c.Request.Context(), req.ResumeText, req.CoverLetter, job.Description, job.Company, job.Title)
	if err != nil {
		s.pushNote("System fault: Analysis failed.", models.NotifyError)
		s.writeError(c, err)
		return
	}

	s.recordPrompt(c, models.ActionAnalyze,
		fmt.Sprintf("Analyzed resume for %s at %s", job.Title, job.Company),
		fmt.Sprintf("Score: %.0f%% - %s", result.Score, result.Status),
		role)
	s.pushNote("Agent Report Generated: Ready for review.", models.NotifySuccess)
	c.JSON(http.StatusOK, result)
}

func (s *Server) advisorSummarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	description := req.Description
	subject := "job description"
	if req.JobID != "" {
		job, ok := s.catalog.Get(req.JobID)
		if !ok {
			s.writeError(c, errors.NewRecordNotFoundError(req.JobID))
			return
		}
		description = job.Description
		subject = job.Title
	}
	if description == "" {
		s.writeError(c, errors.NewValidationFailedError("jobId or description is required"))
		return
	}

	role, ok := s.gateAdvisor(c)
	if !ok {
		return
	}

	summary := s.advisor.SummarizeJob(c.Request.Context(), description)
	s.recordPrompt(c, models.ActionSummarize, fmt.Sprintf("Summarized %s", subject), summary, role)
	s.pushNote("Scan Report available in History.", models.NotifyInfo)
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (s *Server) advisorPracticeQuestion(c *gin.Context) {
	var req practiceQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	role, ok := s.gateAdvisor(c)
	if !ok {
		return
	}

	session, err := s.advisor.GeneratePracticeQuestion(c.Request.Context(), req.Context)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.recordPrompt(c, models.ActionPractice, "Generated practice interview question", session.Question, role)
	c.JSON(http.StatusOK, session)
}

func (s *Server) advisorPracticeAnswer(c *gin.Context) {
	var req practiceAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	role, ok := s.gateAdvisor(c)
	if !ok {
		return
	}

	feedback, err := s.advisor.EvaluateAnswer(c.Request.Context(), req.Question, req.Answer)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.recordPrompt(c, models.ActionPractice,
		fmt.Sprintf("Evaluated answer for: %s", req.Question),
		fmt.Sprintf("Score: %.0f", feedback.Score),
		role)
	c.JSON(http.StatusOK, feedback)
}

func (s *Server) advisorSupport(c *gin.Context) {
	var req supportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	role, ok := s.gateAdvisor(c)
	if !ok {
		return
	}

	response, err := s.advisor.GetCareerAdvice(c.Request.Context(), req.ResumeText, req.TargetRole)
	if err != nil {
		s.writeError(c, err)
		return
	}

	target := req.TargetRole
	if target == "" {
		target = "general role"
	}
	s.recordPrompt(c, models.ActionSupport,
		fmt.Sprintf("Career support for %s", target),
		fmt.Sprintf("%d suggestions, %d questions",
			len(response.ResumeFeedback.Suggestions),
			len(response.InterviewPreparation.RoleSpecificQuestions)),
		role)
	c.JSON(http.StatusOK, response)
}

// ==========================
// History & Notifications
// ==========================

func (s *Server) getHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stats":   s.quota.Stats(),
		"history": s.quota.History(),
	})
}

func (s *Server) drainNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": s.notify.Drain()})
}

// ==========================
// Debug Handlers
// ==========================

func (s *Server) seedApplications(c *gin.Context) {
	if err := s.tracker.SeedDemo(c.Request.Context(), 50); err != nil {
		s.writeError(c, err)
		return
	}
	s.pushNote("Debug: 50 demo records injected.", models.NotifyInfo)
	c.JSON(http.StatusOK, gin.H{"count": s.tracker.Count()})
}

func (s *Server) seedHistory(c *gin.Context) {
	if err := s.quota.SeedHistory(c.Request.Context()); err != nil {
		s.writeError(c, err)
		return
	}
	s.pushNote("Audit trail seeded with 3 entries", models.NotifySuccess)
	c.JSON(http.StatusOK, gin.H{"history": s.quota.History()})
}

// ==========================
// Helpers
// ==========================

// gateAdvisor enforces the daily quota before any advisory network call.
func (s *Server) gateAdvisor(c *gin.Context) (models.UserRole, bool) {
	role := s.auth.Current().Role
	if err := s.quota.Allow(role); err != nil {
		s.pushNote("AI Rate Limit: Daily quota exceeded.", models.NotifyError)
		s.writeError(c, err)
		return role, false
	}
	return role, true
}

func (s *Server) recordPrompt(c *gin.Context, action models.PromptAction, prompt, preview string, role models.UserRole) {
	if err := s.quota.Record(c.Request.Context(), action, prompt, preview, role); err != nil {
		s.logger.Warn("failed to record advisory interaction", map[string]interface{}{
			"action": string(action),
			"error":  err,
		})
	}
}

func (s *Server) pushNote(message string, kind models.NotificationType) {
	if s.notify != nil {
		s.notify.Push(message, kind)
	}
}

// writeError converts internal errors to HTTP responses at the boundary.
func (s *Server) writeError(c *gin.Context, err error) {
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		c.JSON(errors.HTTPStatus(stdErr.Code), gin.H{
			"error":   stdErr.Message,
			"code":    stdErr.Code,
			"details": stdErr.Details,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
