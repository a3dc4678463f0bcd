package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/stemsi/placement-backend/internal/config"
	"github.com/stemsi/placement-backend/internal/handler"
	"github.com/stemsi/placement-backend/internal/middleware"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/response"
	"github.com/stemsi/placement-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	Institute     *handler.InstituteHandler
	Admin         *handler.AdminHandler
	Setting       *handler.SettingHandler
	Recruiter     *handler.RecruiterHandler
	StudentPortal *handler.StudentPortalHandler
}

// Deps are the shared collaborators the middlewares need.
type Deps struct {
	Auth     *service.AuthService
	Limiter  middleware.Allower // nil disables rate limiting
	Gatherer prometheus.Gatherer
	Log      zerolog.Logger
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(deps Deps, handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID, "Retry-After", "X-RateLimit-Remaining"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the access log and every envelope carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(deps.Log))

	router.Use(middleware.Brotli(middleware.BrotliConfig{
		Skip: func(c *gin.Context) bool {
			return strings.HasPrefix(c.Request.URL.Path, "/metrics")
		},
	}))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	publicAPI.Use(middleware.CacheControl(300))
	{
		publicAPI.GET("/institutes", handlers.Institute.Lookup)
		publicAPI.GET("/institutes/:institute_id/settings", handlers.Setting.GetPublicSettings)
	}

	requireSession := []gin.HandlerFunc{
		middleware.RequireJWT(deps.Auth),
		middleware.CheckActiveSession(deps.Auth),
	}

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	if deps.Limiter != nil {
		auth.Use(middleware.RateLimit(deps.Limiter, redis_rate.PerMinute(cfg.AuthRateLimit), "auth", deps.Log))
	}
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", append(requireSession, handlers.Auth.Logout)...)
		auth.GET("/me", append(requireSession, handlers.Auth.Me)...)
	}

	// ─── 2. Admin Group (institute owner) ──────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(requireSession...)
	adminAPI.Use(middleware.RequireRole(model.RoleAdmin))
	{
		adminAPI.GET("/students", handlers.Admin.ListStudents)
		adminAPI.POST("/students/:email/verify", handlers.Admin.VerifyStudent)
		adminAPI.DELETE("/students/:email", handlers.Admin.RemoveStudent)
		adminAPI.GET("/verification-requests", handlers.Admin.ListVerificationRequests)

		adminAPI.GET("/recruiters", handlers.Admin.ListRecruiters)
		adminAPI.POST("/recruiters/:email/approve", handlers.Admin.ApproveRecruiter)

		adminAPI.GET("/settings", handlers.Setting.GetSettings)
		adminAPI.PUT("/settings", handlers.Setting.UpdateSettings)
	}

	// ─── 3. Recruiter Group ────────────────────────────────────────────
	recruiterAPI := router.Group("/api/v1/recruiter")
	recruiterAPI.Use(requireSession...)
	recruiterAPI.Use(middleware.RequireRole(model.RoleRecruiter))
	{
		recruiterAPI.POST("/jobs", handlers.Recruiter.CreateJob)
		recruiterAPI.GET("/jobs", handlers.Recruiter.ListJobs)
		recruiterAPI.GET("/applications", handlers.Recruiter.ListApplications)
		recruiterAPI.PATCH("/applications/:id", handlers.Recruiter.UpdateApplicationStatus)
	}

	// ─── 4. Student Group ──────────────────────────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(requireSession...)
	studentAPI.Use(middleware.RequireRole(model.RoleStudent))
	{
		studentAPI.GET("/jobs", handlers.StudentPortal.ListJobs)
		studentAPI.GET("/job-posts", handlers.StudentPortal.ListJobPosts)
		studentAPI.POST("/jobs/:id/apply", handlers.StudentPortal.Apply)
		studentAPI.GET("/applications", handlers.StudentPortal.ListApplications)
	}

	return router
}
