package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusRegistered EnrollmentStatus = "Registered"
	EnrollmentStatusCompleted  EnrollmentStatus = "Completed"
	EnrollmentStatusWithdrawn  EnrollmentStatus = "Withdrawn"
)

// Enrollment captures a student's registration to a course. At most one
// non-withdrawn row exists per (student, course) pair; the grade is set only
// once the status reaches Completed.
type Enrollment struct {
	ID             string           `db:"id" json:"enrollment_id"`
	StudentID      string           `db:"student_id" json:"student_id"`
	CourseID       string           `db:"course_id" json:"course_id"`
	EnrollmentDate time.Time        `db:"enrollment_date" json:"enrollment_date"`
	Status         EnrollmentStatus `db:"status" json:"status"`
	Grade          *string          `db:"grade" json:"grade,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`
}

// EnrollmentDetail enriches Enrollment with course info for responses.
type EnrollmentDetail struct {
	Enrollment
	CourseCode  string `db:"course_code" json:"course_code"`
	CourseTitle string `db:"course_title" json:"course_title"`
	Credits     int    `db:"credits" json:"credits"`
}

// EnrollmentTally counts a student's enrollments by completion, used by the
// graduation evaluation.
type EnrollmentTally struct {
	Total     int `db:"total"`
	Completed int `db:"completed"`
}
