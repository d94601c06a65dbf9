package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/HThanh-how/LBG/api/swagger"
	"github.com/HThanh-how/LBG/internal/handler"
	"github.com/HThanh-how/LBG/internal/middleware"
	"github.com/HThanh-how/LBG/internal/repository"
	"github.com/HThanh-how/LBG/internal/service"
	"github.com/HThanh-how/LBG/pkg/cache"
	"github.com/HThanh-how/LBG/pkg/config"
	"github.com/HThanh-how/LBG/pkg/database"
	"github.com/HThanh-how/LBG/pkg/jobs"
	"github.com/HThanh-how/LBG/pkg/logger"
	corsmiddleware "github.com/HThanh-how/LBG/pkg/middleware/cors"
	reqidmiddleware "github.com/HThanh-how/LBG/pkg/middleware/requestid"
	"github.com/HThanh-how/LBG/pkg/storage"
)

// @title Lich Bao Giang API
// @version 1.0.0
// @description Weekly lesson-plan resolution and reporting backend for teachers
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, report caching and rate limiting disabled", "error", err)
		redisClient = nil
	}

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	curriculumRepo := repository.NewCurriculumRepository(db)
	weeklyLogRepo := repository.NewWeeklyLogRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	exportJobRepo := repository.NewExportJobRepository(db)

	metricsSvc := service.NewMetricsService()

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})

	reportSvc := service.NewReportService(timetableRepo, curriculumRepo, weeklyLogRepo, holidayRepo,
		redisClient, metricsSvc, logr, service.ReportConfig{
			CacheTTL:      cfg.Reports.CacheTTL,
			ReferenceYear: cfg.SchoolYear.ReferenceYear,
		})

	timetableSvc := service.NewTimetableService(timetableRepo, reportSvc, logr)
	curriculumSvc := service.NewCurriculumService(curriculumRepo, reportSvc, logr)
	holidaySvc := service.NewHolidayService(holidayRepo, reportSvc, logr)
	importSvc := service.NewImportService(timetableSvc, curriculumSvc, logr)

	exportSvc := service.NewExportService(reportSvc, userRepo, exportStore, signer, service.ExportConfig{
		APIPrefix:     cfg.APIPrefix,
		ResultTTL:     cfg.Exports.ResultTTL,
		ReferenceYear: cfg.SchoolYear.ReferenceYear,
	}, logr, nil, nil)

	exportWorker := service.NewExportWorker(exportJobRepo, exportSvc, metricsSvc, cfg.Exports.WorkerRetries, logr)
	exportQueue := jobs.NewQueue("exports", exportWorker.Handle, jobs.QueueConfig{
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
		RetryDelay: 5 * time.Second,
		Logger:     logr,
	})

	exportJobSvc := service.NewExportJobService(exportJobRepo, exportQueue, exportSvc, logr, service.ExportJobConfig{
		ResultTTL:       cfg.Exports.ResultTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
		MaxRetries:      cfg.Exports.WorkerRetries,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	exportQueue.Start(ctx)
	defer exportQueue.Stop()
	exportJobSvc.RecoverPendingJobs(ctx)
	exportJobSvc.StartCleanup(ctx)

	authHandler := handler.NewAuthHandler(authSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	curriculumHandler := handler.NewCurriculumHandler(curriculumSvc)
	reportHandler := handler.NewWeeklyReportHandler(reportSvc)
	holidayHandler := handler.NewHolidayHandler(holidaySvc)
	uploadHandler := handler.NewUploadHandler(importSvc, cfg.Uploads.MaxFileSizeBytes)
	templateHandler := handler.NewTemplateHandler()
	exportHandler := handler.NewExportHandler(exportJobSvc)

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
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var limiter *limiterConfig
	if cfg.RateLimit.Enabled {
		limiter = &limiterConfig{client: redisClient, cfg: cfg.RateLimit}
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
			auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
		}

		api.GET("/templates/tkb", templateHandler.Timetable)
		api.GET("/templates/ctgd", templateHandler.Curriculum)
		api.GET("/export/:token", exportHandler.Download)

		protected := api.Group("", middleware.JWT(authSvc))
		{
			protected.GET("/timetable", timetableHandler.List)
			protected.PUT("/timetable", timetableHandler.Replace)

			protected.GET("/curriculum", curriculumHandler.List)
			protected.PUT("/curriculum", curriculumHandler.Replace)

			protected.GET("/reports/:week", limiter.limit("report", cfg.RateLimit.ReportPerMin, time.Minute), reportHandler.Get)
			protected.PUT("/reports/:week", limiter.limit("save", cfg.RateLimit.SavePerHour, time.Hour), reportHandler.Save)

			protected.GET("/holidays", holidayHandler.List)
			protected.POST("/holidays", holidayHandler.Create)
			protected.DELETE("/holidays/:id", holidayHandler.Delete)
			protected.POST("/holidays/defaults", holidayHandler.CreateDefaults)

			protected.POST("/uploads/tkb", limiter.limit("upload", cfg.RateLimit.UploadPerHour, time.Hour), uploadHandler.UploadTimetable)
			protected.POST("/uploads/ctgd", limiter.limit("upload", cfg.RateLimit.UploadPerHour, time.Hour), uploadHandler.UploadCurriculum)

			protected.POST("/export", limiter.limit("export", cfg.RateLimit.ExportPerHour, time.Hour), exportHandler.Generate)
			protected.GET("/export/jobs/:id", exportHandler.Status)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// limiterConfig keeps route wiring readable when rate limiting is off.
type limiterConfig struct {
	client *redis.Client
	cfg    config.RateLimitConfig
}

func (l *limiterConfig) limit(scope string, limit int, window time.Duration) gin.HandlerFunc {
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(l.client, scope, limit, window)
}
