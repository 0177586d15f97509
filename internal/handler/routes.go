package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler needed to register the API surface.
type Handlers struct {
	Auth         *AuthHandler
	Student      *StudentHandler
	Enrollment   *EnrollmentHandler
	Grade        *GradeHandler
	Attendance   *AttendanceHandler
	Announcement *AnnouncementHandler
	Assignment   *AssignmentHandler
	Metrics      *MetricsHandler
	Health       *HealthHandler
}

// Register wires all routes onto the engine. Routes under prefix require
// the auth middleware except signup, login and the department catalogue.
func Register(r *gin.Engine, prefix string, auth gin.HandlerFunc, h Handlers) {
	r.GET("/health", h.Health.Live)
	r.GET("/ready", h.Health.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)

	api.POST("/students/signup", h.Auth.Signup)
	api.POST("/students/login", h.Auth.Login)
	api.GET("/departments", h.Student.Departments)

	secured := api.Group("", auth)

	secured.GET("/students/verify", h.Auth.Verify)
	secured.POST("/students/logout", h.Auth.Logout)

	secured.GET("/students/profile", h.Student.Profile)
	secured.PUT("/students/profile", h.Student.UpdateProfile)

	secured.GET("/students/courses", h.Enrollment.Courses)
	secured.POST("/students/enroll", h.Enrollment.Enroll)
	secured.GET("/students/enrollments", h.Enrollment.List)
	secured.PUT("/enrollments/:id/grade", h.Enrollment.SetGrade)
	secured.PUT("/enrollments/:id/withdraw", h.Enrollment.Withdraw)

	secured.GET("/students/gpa", h.Grade.GpaSummary)
	secured.GET("/students/grades-summary", h.Grade.GradesSummary)
	secured.GET("/students/transcript", h.Grade.Transcript)

	secured.GET("/students/attendance/summary", h.Attendance.Summary)
	secured.GET("/students/attendance/records", h.Attendance.Records)

	secured.GET("/students/assignments", h.Assignment.List)
	secured.PUT("/students/assignments/:id/submit", h.Assignment.Submit)

	secured.GET("/announcements", h.Announcement.List)
}
