// internal/api/server.go
package api

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"careerpilot/internal/auth"
	"careerpilot/internal/catalog"
	"careerpilot/internal/common/logger"
	"careerpilot/internal/common/observability"
	"careerpilot/internal/gesture"
	"careerpilot/internal/models"
	"careerpilot/internal/notify"
	"careerpilot/internal/quota"
	"careerpilot/internal/tracker"
)

// Advisor is the advisory surface the handlers depend on.
type Advisor interface {
	ScoreResume(ctx context.Context, resume, coverLetter, jobDescription, company, title string) (*models.AnalysisResult, error)
	SummarizeJob(ctx context.Context, description string) string
	GeneratePracticeQuestion(ctx context.Context, userContext string) (*models.PracticeSession, error)
	EvaluateAnswer(ctx context.Context, question, answer string) (*models.PracticeFeedback, error)
	GetCareerAdvice(ctx context.Context, resumeText, targetRole string) (*models.SupportResponse, error)
}

// Deps are the services the HTTP surface is built on.
type Deps struct {
	Tracker       *tracker.Repository
	Catalog       *catalog.Catalog
	Advisor       Advisor
	Quota         *quota.Manager
	Auth          *auth.Service
	Notify        *notify.Center
	GestureConfig gesture.Config
	Observability *observability.Observability
	Logger        logger.Logger
}

// Server is the gin HTTP surface over the tracker, catalog, advisor, quota
// and auth services.
type Server struct {
	engine     *gin.Engine
	tracker    *tracker.Repository
	catalog    *catalog.Catalog
	advisor    Advisor
	quota      *quota.Manager
	auth       *auth.Service
	notify     *notify.Center
	gestureCfg gesture.Config
	obs        *observability.Observability
	logger     logger.Logger
}

func NewServer(deps Deps) *Server {
	if deps.GestureConfig == (gesture.Config{}) {
		deps.GestureConfig = gesture.DefaultConfig()
	}
	s := &Server{
		tracker:    deps.Tracker,
		catalog:    deps.Catalog,
		advisor:    deps.Advisor,
		quota:      deps.Quota,
		auth:       deps.Auth,
		notify:     deps.Notify,
		gestureCfg: deps.GestureConfig,
		obs:        deps.Observability,
		logger:     deps.Logger.WithFields(map[string]interface{}{"component": "api"}),
	}
	s.engine = s.buildRouter()
	return s
}

// Router exposes the engine for http.Server and tests.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

func (s *Server) buildRouter() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestMetrics())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsCfg))

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	{
		api.GET("/health", s.health)

		api.GET("/auth/me", s.currentUser)
		api.POST("/auth/login", s.login)
		api.POST("/auth/signup", s.signup)
		api.POST("/auth/logout", s.logout)
		api.POST("/auth/toggle-role", s.toggleRole)

		api.GET("/jobs", s.listJobs)
		api.GET("/jobs/:id", s.getJob)
		api.POST("/jobs/:id/save", s.saveJob)

		api.POST("/applications", s.createApplication)
		api.GET("/applications", s.listApplications)
		api.PATCH("/applications/:id/status", s.updateApplicationStatus)
		api.DELETE("/applications/:id", s.archiveApplication)
		api.POST("/applications/:id/gesture", s.applyGesture)

		api.GET("/insights", s.getInsights)

		api.POST("/advisor/analyze", s.advisorAnalyze)
		api.POST("/advisor/summarize", s.advisorSummarize)
		api.POST("/advisor/practice/question", s.advisorPracticeQuestion)
		api.POST("/advisor/practice/answer", s.advisorPracticeAnswer)
		api.POST("/advisor/support", s.advisorSupport)

		api.GET("/history", s.getHistory)
		api.GET("/notifications", s.drainNotifications)

		api.POST("/debug/seed-applications", s.seedApplications)
		api.POST("/debug/seed-history", s.seedHistory)
	}

	return engine
}

// requestMetrics records per-route counters and latency on the otel meter.
func (s *Server) requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if s.obs == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		s.obs.RecordRequest(c.Request.Context(), route, strconv.Itoa(c.Writer.Status()))
		s.obs.RecordRequestDuration(c.Request.Context(), time.Since(start), route)
	}
}
