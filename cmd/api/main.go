package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/neu-portal/student-records-api/api/swagger"
	"github.com/neu-portal/student-records-api/internal/handler"
	"github.com/neu-portal/student-records-api/internal/middleware"
	"github.com/neu-portal/student-records-api/internal/repository"
	"github.com/neu-portal/student-records-api/internal/service"
	"github.com/neu-portal/student-records-api/pkg/cache"
	"github.com/neu-portal/student-records-api/pkg/config"
	"github.com/neu-portal/student-records-api/pkg/database"
	"github.com/neu-portal/student-records-api/pkg/export"
	"github.com/neu-portal/student-records-api/pkg/logger"
	corsmiddleware "github.com/neu-portal/student-records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/neu-portal/student-records-api/pkg/middleware/requestid"
)

// @title Student Records API
// @version 1.0.0
// @description Enrollment, grading, attendance and announcements for the student portal
// @BasePath /api
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	studentRepo := repository.NewStudentRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	gradePointRepo := repository.NewGradePointRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, metricsSvc, logr)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := gradePointRepo.Seed(seedCtx); err != nil {
		cancel()
		logr.Sugar().Fatalw("failed to seed grade scale", "error", err)
	}
	cancel()

	authSvc := service.NewAuthService(studentRepo, departmentRepo, cfg.JWT, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, departmentRepo, validate, logr)
	graduationSvc := service.NewGraduationService(studentRepo, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, courseRepo, studentRepo, gradePointRepo, graduationSvc, validate, logr)
	gradeSvc := service.NewGradeService(gradeRepo, studentRepo, export.NewCSVExporter(), export.NewPDFExporter(), logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, cacheRepo, cfg.Attendance.CacheTTL, cfg.Attendance.RecordsLimit, logr)
	announcementSvc := service.NewAnnouncementService(studentRepo, announcementRepo, cacheRepo, cfg.Announcements.CacheTTL, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, validate, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.Register(r, cfg.APIPrefix, middleware.JWT(authSvc), handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc, studentSvc),
		Student:      handler.NewStudentHandler(studentSvc),
		Enrollment:   handler.NewEnrollmentHandler(enrollmentSvc),
		Grade:        handler.NewGradeHandler(gradeSvc),
		Attendance:   handler.NewAttendanceHandler(attendanceSvc),
		Announcement: handler.NewAnnouncementHandler(announcementSvc),
		Assignment:   handler.NewAssignmentHandler(assignmentSvc),
		Metrics:      handler.NewMetricsHandler(metricsSvc),
		Health:       handler.NewHealthHandler(db, redisClient),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
