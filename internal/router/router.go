package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/config"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/handler"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/middleware"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Exam       *handler.ExamHandler
	Submission *handler.SubmissionHandler
	Fee        *handler.FeeHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// Restrict to the configured origins; allow all in dev when unset.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.RequireJWT(cfg.JWTSecret)
	staffOnly := middleware.RequireRole(middleware.RoleTeacher, middleware.RolePrincipal, middleware.RoleAdmin)
	principalOnly := middleware.RequireRole(middleware.RolePrincipal)

	// Cap unauthenticated and student-facing write bursts.
	limiter := middleware.NewRateLimiter(120, time.Minute)

	// ─── Exams ─────────────────────────────────────────────────────────
	exams := router.Group("/api/v1/exams")
	exams.Use(auth)
	{
		exams.GET("", handlers.Exam.List)
		exams.GET("/:id/paper", handlers.Exam.GetPaper)

		// Authoring and results carry correct answers and scores.
		exams.POST("", staffOnly, handlers.Exam.Create)
		exams.GET("/:id", staffOnly, handlers.Exam.GetDetail)
		exams.DELETE("/:id", staffOnly, handlers.Exam.Delete)
		exams.GET("/:id/results", staffOnly, handlers.Submission.ResultsByExam)
	}

	// ─── Submissions ───────────────────────────────────────────────────
	submissions := router.Group("/api/v1/submissions")
	submissions.Use(auth, limiter.Middleware())
	{
		submissions.GET("", handlers.Submission.MySubmissions)
		submissions.POST("/start", handlers.Submission.Start)
		submissions.POST("/answer", handlers.Submission.SaveAnswer)
		submissions.POST("/submit", handlers.Submission.Submit)
		submissions.GET("/:id", handlers.Submission.Get)
		submissions.GET("/:id/answers", handlers.Submission.Answers)
	}

	// ─── Fees ──────────────────────────────────────────────────────────
	fees := router.Group("/api/v1/fees")
	fees.Use(auth, staffOnly)
	{
		fees.GET("/structures", handlers.Fee.ListStructures)
		fees.GET("/structures/:class", handlers.Fee.GetStructure)
		fees.POST("/structures", handlers.Fee.CreateStructure)
		fees.PUT("/structures/:class", handlers.Fee.UpdateStructure)
		fees.DELETE("/structures/:class", handlers.Fee.DeleteStructure)

		fees.POST("/calculate-quarters", handlers.Fee.CalculateQuarters)
		fees.GET("/class-wise-payments", handlers.Fee.ClassWisePayments)

		// Section extra fees change what every family in a section owes.
		fees.GET("/section-fees", handlers.Fee.ListSectionFees)
		fees.POST("/section-fees", principalOnly, handlers.Fee.CreateSectionFee)
		fees.PUT("/section-fees/:id", principalOnly, handlers.Fee.UpdateSectionFee)
		fees.DELETE("/section-fees/:id", principalOnly, handlers.Fee.DeleteSectionFee)
	}

	// ─── WebSocket ─────────────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(auth, staffOnly)
	{
		ws.GET("/exams/:id/monitor", handlers.WS.MonitorExam)
	}

	return router
}
