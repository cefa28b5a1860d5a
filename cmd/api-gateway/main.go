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

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/campus-portal-api/api/swagger"
	"github.com/noah-isme/campus-portal-api/internal/handler"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/view"
	"github.com/noah-isme/campus-portal-api/pkg/cache"
	"github.com/noah-isme/campus-portal-api/pkg/config"
	"github.com/noah-isme/campus-portal-api/pkg/database"
	"github.com/noah-isme/campus-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-portal-api/pkg/middleware/requestid"
	"github.com/noah-isme/campus-portal-api/pkg/storage"
)

// @title Campus Portal API
// @version 0.1.0
// @description Campus administration portal gateway
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var cacheStore service.CacheStore
	cacheEnabled := false
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	} else {
		repo := repository.NewCacheRepository(redisClient, logr)
		defer repo.Close()
		cacheStore = repo
		cacheEnabled = true
	}
	cacheSvc := service.NewCacheService(cacheStore, metrics, cfg.Gradebook.CacheTTL, logr, cacheEnabled)

	userRepo := repository.NewUserRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, logr)
	gradebookSvc := service.NewGradebookService(service.GradebookServiceParams{
		Grades:        gradeRepo,
		Enrollments:   enrollmentRepo,
		Users:         userRepo,
		Cache:         cacheSvc,
		PassThreshold: cfg.Gradebook.PassThreshold,
		CacheTTL:      cfg.Gradebook.CacheTTL,
		Logger:        logr,
	})
	facilitySvc := service.NewFacilityService(service.FacilityServiceParams{
		Sections:    sectionRepo,
		Enrollments: enrollmentRepo,
		Users:       userRepo,
		Cache:       cacheSvc,
		Logger:      logr,
	})
	standingSvc := service.NewStandingService(service.StandingServiceParams{
		Enrollments: enrollmentRepo,
		Users:       userRepo,
		Logger:      logr,
	})
	studyLoadSvc := service.NewStudyLoadService(service.StudyLoadServiceParams{
		Subjects: subjectRepo,
		Users:    userRepo,
		Catalog:  view.DefaultCatalog(),
		Logger:   logr,
	})
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Users:         userRepo,
		Sections:      sectionRepo,
		Grades:        gradeRepo,
		Enrollments:   enrollmentRepo,
		Announcements: announcementRepo,
		Cache:         cacheSvc,
		CacheTTL:      cfg.Dashboard.CacheTTL,
		Logger:        logr,
	})
	announcementSvc := service.NewAnnouncementService(announcementRepo, logr, cfg.Announcements.Enabled)

	reportStore, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init report storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
	reportSvc := service.NewReportService(gradebookSvc, reportStore, signer, service.ReportConfig{
		Enabled:       cfg.Reports.Enabled,
		APIPrefix:     cfg.APIPrefix,
		ResultTTL:     cfg.Reports.SignedURLTTL,
		Workers:       cfg.Reports.WorkerConcurrency,
		MaxRetries:    cfg.Reports.WorkerRetries,
		PassThreshold: cfg.Gradebook.PassThreshold,
	}, logr)
	reportSvc.Start(context.Background())
	defer reportSvc.Stop()

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	gradebookHandler := handler.NewGradebookHandler(gradebookSvc)
	facilityHandler := handler.NewFacilityHandler(facilitySvc)
	standingHandler := handler.NewStandingHandler(standingSvc)
	studyLoadHandler := handler.NewStudyLoadHandler(studyLoadSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	announcementHandler := handler.NewAnnouncementHandler(announcementSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())

	api.POST("/auth/login", authHandler.Login)
	api.GET("/announcements", middleware.OptionalJWT(authSvc), announcementHandler.List)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.GET("/auth/me", authHandler.Me)

	admin := authed.Group("")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.GET("/dashboard/admin", dashboardHandler.Admin)
	admin.GET("/system/metrics", metricsHandler.System)
	admin.POST("/reports", reportHandler.Create)
	admin.GET("/reports/:id", reportHandler.Get)

	staff := authed.Group("")
	staff.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
	staff.GET("/study-loads", studyLoadHandler.StudyLoad)
	staff.GET("/sections/facilities", facilityHandler.Map)

	selfOrStaff := authed.Group("")
	selfOrStaff.Use(middleware.RBAC(string(models.RoleAdmin), string(models.RoleTeacher), "SELF"))
	selfOrStaff.GET("/users/:id", userHandler.Get)
	selfOrStaff.GET("/students/:id/grades", gradebookHandler.StudentGrades)
	selfOrStaff.GET("/students/:id/building", facilityHandler.StudentBuilding)
	selfOrStaff.GET("/students/:id/standing", standingHandler.StudentStanding)
	selfOrStaff.GET("/teachers/:id/schedule", studyLoadHandler.TeacherSchedule)

	// download tokens are themselves signed, no session required
	api.GET("/reports/download/:token", reportHandler.Download)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Sugar().Infow("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("forced shutdown", "error", err)
	}
}
