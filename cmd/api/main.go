package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobber-ats/core/internal/config"
	"github.com/jobber-ats/core/internal/platform/extractor"
	"github.com/jobber-ats/core/internal/platform/httpx"
	"github.com/jobber-ats/core/internal/platform/llmclient"
	"github.com/jobber-ats/core/internal/platform/logger"
	"github.com/jobber-ats/core/internal/platform/postgres"
	redisPlatform "github.com/jobber-ats/core/internal/platform/redis"
	"github.com/jobber-ats/core/internal/platform/storage"
	"github.com/jobber-ats/core/internal/platform/workerpool"

	auditHandler "github.com/jobber-ats/core/modules/audit/handler"
	auditRepo "github.com/jobber-ats/core/modules/audit/repository"
	auditService "github.com/jobber-ats/core/modules/audit/service"

	candidateHandler "github.com/jobber-ats/core/modules/candidates/handler"
	candidateRepo "github.com/jobber-ats/core/modules/candidates/repository"
	candidateService "github.com/jobber-ats/core/modules/candidates/service"

	interviewerHandler "github.com/jobber-ats/core/modules/interviewers/handler"
	interviewerRepo "github.com/jobber-ats/core/modules/interviewers/repository"
	interviewerService "github.com/jobber-ats/core/modules/interviewers/service"

	interviewHandler "github.com/jobber-ats/core/modules/interviews/handler"
	interviewRepo "github.com/jobber-ats/core/modules/interviews/repository"
	interviewService "github.com/jobber-ats/core/modules/interviews/service"

	feedbackHandler "github.com/jobber-ats/core/modules/feedback/handler"
	feedbackRepo "github.com/jobber-ats/core/modules/feedback/repository"
	feedbackService "github.com/jobber-ats/core/modules/feedback/service"

	screeningHandler "github.com/jobber-ats/core/modules/screenings/handler"
	screeningRepo "github.com/jobber-ats/core/modules/screenings/repository"
	screeningService "github.com/jobber-ats/core/modules/screenings/service"

	dashboardHandler "github.com/jobber-ats/core/modules/dashboard/handler"
	dashboardRepo "github.com/jobber-ats/core/modules/dashboard/repository"
	dashboardService "github.com/jobber-ats/core/modules/dashboard/service"

	"github.com/gin-gonic/gin"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("ATS_CONFIG_FILE"))
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("starting applicant tracking system",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	if cfg.Sentry.Enabled() {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Server.Env,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
		}); err != nil {
			appLogger.Warn("failed to initialize sentry, panics will not be reported", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
			appLogger.Info("sentry panic reporting configured")
		}
	} else {
		appLogger.Info("no sentry dsn configured, panic reporting disabled")
	}

	ctx := context.Background()

	pgClient, err := postgres.New(ctx, cfg.Storage)
	if err != nil {
		appLogger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pgClient.Close()
	appLogger.Info("connected to postgres")

	if err := postgres.RunMigrations(ctx, cfg.Storage, appLogger, "./migrations"); err != nil {
		appLogger.Fatal("failed to run database migrations", zap.Error(err))
	}

	redisClient, err := redisPlatform.New(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("connected to redis")

	blobStore := buildBlobStore(cfg, appLogger)
	extractorDispatcher := extractor.NewDispatcher(extractor.NewPDFExtractor(), extractor.NewDOCXExtractor())

	var analyzer llmclient.Analyzer
	if cfg.LLM.Enabled() {
		analyzer = llmclient.NewAnthropicAnalyzer(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout)
		appLogger.Info("llm analyzer configured", zap.String("model", cfg.LLM.Model))
	} else {
		appLogger.Info("no llm api key configured, screening will always use the fallback analyzer")
	}

	screeningPool := workerpool.New(cfg.Screening.Pool.Core, cfg.Screening.Pool.Max, cfg.Screening.Pool.Queue, appLogger)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(httpx.RequestIDMiddleware())
	router.Use(httpx.LoggerMiddleware(appLogger))
	router.Use(httpx.RecoveryMiddleware(appLogger))
	router.Use(httpx.CORSMiddleware(cfg.CORS.AllowedOrigins))

	router.GET("/health", healthCheckHandler(ctx, pgClient, redisClient))
	router.GET("/ping", pingHandler)

	// Repositories
	auditRepository := auditRepo.NewAuditRepository(pgClient.Pool)
	candidateRepository := candidateRepo.NewCandidateRepository(pgClient.Pool)
	interviewerRepository := interviewerRepo.NewInterviewerRepository(pgClient.Pool)
	interviewRepository := interviewRepo.NewInterviewRepository(pgClient.Pool)
	feedbackRepository := feedbackRepo.NewFeedbackRepository(pgClient.Pool)
	screeningRepository := screeningRepo.NewScreeningRepository(pgClient.Pool)
	dashboardRepository := dashboardRepo.NewDashboardRepository(pgClient.Pool)

	// Services. Construction order matters: interviews/service needs
	// candidates/service to drive stage transitions, so candidates is
	// built first and wired back in via SetCascades/SetScheduleChecker
	// once every service that owns a cascade or reference check exists.
	auditSvc := auditService.NewAuditService(auditRepository)
	candidateSvc := candidateService.NewCandidateService(pgClient, candidateRepository, auditRepository, blobStore, extractorDispatcher, appLogger)
	interviewerSvc := interviewerService.NewInterviewerService(pgClient, interviewerRepository)
	interviewSvc := interviewService.NewInterviewService(pgClient, interviewRepository, auditRepository, interviewerSvc.Exists, candidateSvc)
	feedbackSvc := feedbackService.NewFeedbackService(pgClient, feedbackRepository, interviewSvc, interviewerSvc)
	screeningSvc := screeningService.NewScreeningService(pgClient, screeningRepository, candidateSvc, analyzer, screeningPool, appLogger)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepository, interviewSvc, auditSvc, redisClient, appLogger)

	candidateSvc.SetCascades(interviewSvc, screeningSvc, auditSvc)
	interviewerSvc.SetScheduleChecker(interviewSvc)

	// Handlers
	candidateHdl := candidateHandler.NewCandidateHandler(candidateSvc)
	interviewerHdl := interviewerHandler.NewInterviewerHandler(interviewerSvc)
	interviewHdl := interviewHandler.NewInterviewHandler(interviewSvc)
	feedbackHdl := feedbackHandler.NewFeedbackHandler(feedbackSvc)
	screeningHdl := screeningHandler.NewScreeningHandler(screeningSvc)
	dashboardHdl := dashboardHandler.NewDashboardHandler(dashboardSvc)
	auditHdl := auditHandler.NewAuditHandler(auditSvc, candidateSvc.Exists, interviewSvc.Exists)

	api := router.Group("/api")
	{
		candidateHdl.RegisterRoutes(api)
		interviewerHdl.RegisterRoutes(api)
		interviewHdl.RegisterRoutes(api)
		feedbackHdl.RegisterRoutes(api)
		screeningHdl.RegisterRoutes(api)
		dashboardHdl.RegisterRoutes(api)
		auditHdl.RegisterRoutes(api)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.Info("server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")

	screeningPool.Shutdown(60 * time.Second)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("server exited")
}

// buildBlobStore wires S3 when configured, falling back to the local
// filesystem so resume uploads keep working in development.
func buildBlobStore(cfg *config.Config, appLogger *logger.Logger) storage.BlobStore {
	if cfg.Storage.S3.Enabled() {
		s3Store, err := storage.NewS3Store(cfg.Storage.S3)
		if err != nil {
			appLogger.Warn("failed to initialize s3 store, falling back to local filesystem", zap.Error(err))
		} else {
			appLogger.Info("s3 blob store initialized", zap.String("bucket", cfg.Storage.S3.Bucket))
			return s3Store
		}
	}

	localStore, err := storage.NewLocalStore(cfg.Uploads.ResumeDir)
	if err != nil {
		appLogger.Fatal("failed to initialize local resume store", zap.Error(err))
	}
	appLogger.Info("local filesystem blob store initialized", zap.String("dir", cfg.Uploads.ResumeDir))
	return localStore
}

func healthCheckHandler(ctx context.Context, pgClient *postgres.Client, redisClient *redisPlatform.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := make(map[string]string)

		if err := pgClient.Health(ctx); err != nil {
			services["postgres"] = "down"
		} else {
			services["postgres"] = "up"
		}

		if err := redisClient.Health(ctx); err != nil {
			services["redis"] = "down"
		} else {
			services["redis"] = "up"
		}

		httpx.RespondWithHealth(c, version, services)
	}
}

func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
