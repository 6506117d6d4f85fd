package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/civicpulse/issues-api/api/swagger"
	"github.com/civicpulse/issues-api/internal/handler"
	"github.com/civicpulse/issues-api/internal/middleware"
	"github.com/civicpulse/issues-api/internal/nlp"
	"github.com/civicpulse/issues-api/internal/notify"
	"github.com/civicpulse/issues-api/internal/repository"
	"github.com/civicpulse/issues-api/internal/service"
	"github.com/civicpulse/issues-api/pkg/cache"
	"github.com/civicpulse/issues-api/pkg/config"
	"github.com/civicpulse/issues-api/pkg/database"
	"github.com/civicpulse/issues-api/pkg/logger"
	corsmiddleware "github.com/civicpulse/issues-api/pkg/middleware/cors"
	reqidmiddleware "github.com/civicpulse/issues-api/pkg/middleware/requestid"
)

// @title CivicPulse Issues API
// @version 0.1.0
// @description Citizen-reported civic issue intake and management
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.Database, logr); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	var redisClient *redis.Client
	if cfg.Analytics.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, analytics caching disabled", "error", err)
		}
	}

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(
		repository.NewCacheRepository(redisClient, logr),
		metricsSvc,
		cfg.Analytics.CacheTTL,
		logr,
		cfg.Analytics.CacheEnabled && redisClient != nil,
	)

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.Notifier.SlackToken != "" && cfg.Notifier.SlackChannel != "" {
		notifier = notify.NewSlackNotifier(cfg.Notifier, logr)
	} else {
		logr.Info("no notification channel configured, intake notifications disabled")
	}

	validate := validator.New()
	issueRepo := repository.NewIssueRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	intakeSvc := service.NewIntakeService(
		issueRepo,
		nlp.NewTranscriberClient(cfg.Transcriber, logr),
		nlp.NewAnalyzerClient(cfg.Analyzer, logr),
		notifier,
		cacheSvc,
		validate,
		logr,
	)
	issueSvc := service.NewIssueService(issueRepo, cacheSvc, logr)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, cacheSvc, metricsSvc, cfg.Analytics.CacheTTL, logr)
	exportSvc := service.NewExportService(issueSvc, cfg.Exports.MaxRows, logr)

	intakeHandler := handler.NewIntakeHandler(intakeSvc)
	issueHandler := handler.NewIssueHandler(issueSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc, metricsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/intake", intakeHandler.Intake)
		api.GET("/issues", issueHandler.List)
		api.GET("/issues/export", exportHandler.Export)
		api.GET("/issues/:id", issueHandler.Get)
		api.PUT("/issues/:id", issueHandler.Update)
		api.DELETE("/issues/:id", issueHandler.Delete)
		api.GET("/analytics/summary", analyticsHandler.Summary)
		api.GET("/analytics/system", analyticsHandler.System)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
