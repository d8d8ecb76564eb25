package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/Harish222600/LMS-SELL-sub001/api/swagger"
	"github.com/Harish222600/LMS-SELL-sub001/internal/drilldown"
	"github.com/Harish222600/LMS-SELL-sub001/internal/handler"
	"github.com/Harish222600/LMS-SELL-sub001/internal/notify"
	"github.com/Harish222600/LMS-SELL-sub001/internal/repository"
	"github.com/Harish222600/LMS-SELL-sub001/internal/router"
	"github.com/Harish222600/LMS-SELL-sub001/internal/search"
	"github.com/Harish222600/LMS-SELL-sub001/internal/service"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/cache"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/database"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/logger"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/objstore"
	pkgsearch "github.com/Harish222600/LMS-SELL-sub001/pkg/search"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/storage"
)

// @title LMS Platform API
// @version 1.0.0
// @description Course catalog, learning progress, analytics and careers API
// @BasePath /api/v1
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	validate := validator.New()
	metrics := service.NewMetricsService()

	var cacheService *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		cacheService = service.NewCacheService(nil, metrics, 5*time.Minute, logr, false)
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheService = service.NewCacheService(cacheRepo, metrics, 5*time.Minute, logr, true)
	}

	var courseIndex *search.CourseIndex
	if cfg.Search.Enabled {
		esClient, err := pkgsearch.NewElastic(cfg.Search)
		if err != nil {
			logr.Warn("elasticsearch unavailable, catalog search falls back to sql", zap.Error(err))
		} else {
			courseIndex = search.NewCourseIndex(esClient, cfg.Search.Index)
			if err := courseIndex.EnsureIndex(ctx); err != nil {
				logr.Warn("failed to ensure search index", zap.Error(err))
				courseIndex = nil
			}
		}
	}

	var resumeStore *objstore.FileStore
	if cfg.ObjectStore.Enabled {
		minioClient, err := objstore.New(cfg.ObjectStore)
		if err != nil {
			logr.Warn("minio unavailable, resume uploads disabled", zap.Error(err))
		} else {
			resumeStore = objstore.NewFileStore(minioClient, cfg.ObjectStore.ResumeBucket, cfg.ObjectStore.PresignedTTL)
		}
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	requestRepo := repository.NewAccessRequestRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	postingRepo := repository.NewJobPostingRepository(db)
	applicationRepo := repository.NewJobApplicationRepository(db)
	exportRepo := repository.NewExportRepository(db)

	notifier := notify.NewCenter(cfg.Notify.TTL, cfg.Notify.SweepInterval, cfg.Notify.MaxPerUser, logr)
	notifier.Start()
	defer notifier.Stop()

	drilldownStore := drilldown.NewStore(cfg.Drilldown.SessionTTL, cfg.Drilldown.CleanupInterval, logr)
	drilldownStore.Start()
	defer drilldownStore.Stop()

	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "lms-api",
	})
	userService := service.NewUserService(userRepo, validate, logr)
	categoryService := service.NewCategoryService(categoryRepo, cacheService, validate, logr)
	// a typed nil index would dodge the service's nil check
	var courseService *service.CourseService
	if courseIndex != nil {
		courseService = service.NewCourseService(courseRepo, courseIndex, cacheService, validate, logr)
	} else {
		courseService = service.NewCourseService(courseRepo, nil, cacheService, validate, logr)
	}
	requestService := service.NewAccessRequestService(requestRepo, enrollmentRepo, courseRepo, notifier, cacheService, validate, logr)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, requestRepo, progressRepo, cacheService, logr)
	learningService := service.NewLearningService(progressRepo, enrollmentRepo, courseRepo, notifier, validate, logr, 60)
	analyticsService := service.NewAnalyticsService(categoryRepo, progressRepo, enrollmentRepo, courseRepo, requestRepo, cacheService, metrics, cfg.Analytics, logr)
	dashboardService := service.NewDashboardService(analyticsService, notifier, cacheService, cfg.Dashboard, logr)
	drilldownService := service.NewDrilldownService(drilldownStore, categoryRepo, courseRepo, enrollmentRepo, progressRepo, cfg.Drilldown, logr)
	jobService := service.NewJobService(postingRepo, validate, logr)
	applicationService := service.NewApplicationService(applicationRepo, postingRepo, resumeStore, cfg.ObjectStore, validate, logr)

	var exportService *service.ExportService
	if cfg.Exports.Enabled {
		exportFiles, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Fatal("failed to prepare export storage", zap.Error(err))
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportService = service.NewExportService(exportRepo, enrollmentRepo, courseRepo, analyticsService, exportFiles, signer, cfg.Exports, logr)
		exportService.Start(ctx)
		defer exportService.Stop()
	}

	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Users:         handler.NewUserHandler(userService),
		Categories:    handler.NewCategoryHandler(categoryService, courseService),
		Courses:       handler.NewCourseHandler(courseService),
		Enrollments:   handler.NewEnrollmentHandler(enrollmentService),
		AccessRequest: handler.NewAccessRequestHandler(requestService),
		Learning:      handler.NewLearningHandler(learningService),
		Analytics:     handler.NewAnalyticsHandler(analyticsService),
		Dashboard:     handler.NewDashboardHandler(dashboardService),
		Drilldown:     handler.NewDrilldownHandler(drilldownService),
		Jobs:          handler.NewJobHandler(jobService),
		Applications:  handler.NewApplicationHandler(applicationService),
		Exports:       handler.NewExportHandler(exportService),
		Metrics:       handler.NewMetricsHandler(metrics),
	}

	engine := router.New(cfg, logr, authService, metrics, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
