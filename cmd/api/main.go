package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lessonforge/lessonforge-api/config"
	"github.com/lessonforge/lessonforge-api/internal/cache"
	"github.com/lessonforge/lessonforge-api/internal/handlers"
	"github.com/lessonforge/lessonforge-api/internal/middleware"
	"github.com/lessonforge/lessonforge-api/internal/repository"
	"github.com/lessonforge/lessonforge-api/internal/services"
	"github.com/lessonforge/lessonforge-api/pkg/db"
	"github.com/lessonforge/lessonforge-api/pkg/gemini"
	"github.com/lessonforge/lessonforge-api/pkg/jwt"
	"github.com/lessonforge/lessonforge-api/pkg/logger"
	"github.com/lessonforge/lessonforge-api/pkg/metrics"
	"github.com/lessonforge/lessonforge-api/pkg/profiling"
	"github.com/lessonforge/lessonforge-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// apiHandlers bundles every handler the API surface needs.
type apiHandlers struct {
	meta       *handlers.MetaHandler
	auth       *handlers.AuthHandler
	curriculum *handlers.CurriculumHandler
	lessonPlan *handlers.LessonPlanHandler
	status     *handlers.StatusHandler
	health     *handlers.HealthHandler
}

// registerAPIRoutes registers all routes under the /api group.
func registerAPIRoutes(
	group *gin.RouterGroup,
	cfg *config.Config,
	session gin.HandlerFunc,
	authRateLimiter *middleware.RateLimiter,
	h apiHandlers,
) {
	maxUploadBytes := int64(cfg.Upload.MaxUploadSizeMB) * 1024 * 1024

	group.GET("/", h.meta.Root)
	group.GET("/options", h.meta.Options)

	// Authentication routes (public). Login and signup carry a per-IP rate
	// limit as brute-force hardening.
	group.POST("/auth/signup", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), h.auth.Signup)
	group.POST("/auth/login", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), h.auth.Login)

	// Session-gated routes
	group.GET("/auth/profile", session, h.auth.Profile)
	group.POST("/auth/validate-api-key", session, middleware.BodySizeLimitMiddleware(100*1024), h.auth.ValidateAPIKey)
	group.POST("/upload-pdf", session, middleware.BodySizeLimitMiddleware(maxUploadBytes), h.curriculum.UploadPDF)
	group.POST("/generate-lesson-plan", session, middleware.BodySizeLimitMiddleware(100*1024), h.lessonPlan.Generate)

	// Download is public: plan IDs are unguessable UUIDs and the share flow
	// has no session.
	group.GET("/download-lesson-plan/:plan_id", h.lessonPlan.Download)

	// Diagnostics
	group.POST("/status", middleware.BodySizeLimitMiddleware(100*1024), h.status.Create)
	group.GET("/status", h.status.List)
	group.GET("/healthcheck", h.health.Healthcheck)
	group.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
}

// corsConfig builds the CORS policy from the configured origins. A lone "*"
// opens the API to every origin (the default for single-box deployments).
func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}

	allowedOrigins := cfg.Server.AllowedOrigins
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}

	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}
	corsCfg.AllowOrigins = allowedOrigins
	return corsCfg
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting LessonForge API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.OTLPEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling (no-op unless enabled)
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:        cfg.Database.URL,
		MaxConns:   cfg.Database.MaxConns,
		MinConns:   cfg.Database.MinConns,
		CACertPath: cfg.Database.CACertPath,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// NOTE: Database migrations are run separately via the migrate command
	// before starting the app: ./migrate or docker-compose run migrate

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	extractionRepo := repository.NewExtractionRepository(pool)
	planRepo := repository.NewLessonPlanRepository(pool)
	statusRepo := repository.NewStatusCheckRepository(pool)

	// Session tokens and the LLM gateway
	tokenManager := jwt.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTLHours)
	llmClient := gemini.NewClient(cfg.LLM.Model)

	// Rendered PDFs are cached per plan; rendering is deterministic so the
	// TTL only bounds memory.
	renderCache := cache.NewRenderCache(cfg.Cache.RenderTTLSeconds)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenManager, llmClient, cfg)
	curriculumService := services.NewCurriculumService(extractionRepo, llmClient, cfg)
	lessonPlanService := services.NewLessonPlanService(planRepo, llmClient, renderCache, cfg)
	statusService := services.NewStatusService(statusRepo)

	// Initialize handlers
	h := apiHandlers{
		meta:       handlers.NewMetaHandler(),
		auth:       handlers.NewAuthHandler(authService),
		curriculum: handlers.NewCurriculumHandler(curriculumService),
		lessonPlan: handlers.NewLessonPlanHandler(lessonPlanService),
		status:     handlers.NewStatusHandler(statusService),
		health:     handlers.NewHealthHandler(pool.Ping),
	}

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(cors.New(corsConfig(cfg)))

	// SECURITY: modest per-IP limit on credential endpoints to slow down
	// brute-force attempts; generation endpoints are bounded by the LLM
	// provider's own quotas.
	authRateLimiter := middleware.NewRateLimiter(5, 10) // 5 req/sec, burst of 10

	session := middleware.SessionMiddleware(tokenManager, userRepo)

	// API routes
	api := router.Group("/api")
	registerAPIRoutes(api, cfg, session, authRateLimiter, h)

	// Create HTTP server
	// Write timeout leaves room for LLM-backed endpoints, which regularly
	// hold the response for tens of seconds.
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
