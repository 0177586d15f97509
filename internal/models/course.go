package models

import "time"

// Course is catalog reference data. Credits is the course weight used in the
// GPA numerator and denominator.
type Course struct {
	ID              string  `db:"id" json:"course_id"`
	Code            string  `db:"code" json:"code"`
	Title           string  `db:"title" json:"title"`
	Credits         int     `db:"credits" json:"credits"`
	InstructorID    *string `db:"instructor_id" json:"instructor_id,omitempty"`
	SemesterOffered *string `db:"semester_offered" json:"semester_offered,omitempty"`
}

// EnrolledCourse joins a course with the student's enrollment state.
type EnrolledCourse struct {
	CourseID        string           `db:"course_id" json:"course_id"`
	Code            string           `db:"code" json:"code"`
	Title           string           `db:"title" json:"title"`
	Credits         int              `db:"credits" json:"credits"`
	Instructor      *string          `db:"instructor" json:"instructor,omitempty"`
	EnrollmentDate  time.Time        `db:"enrollment_date" json:"enrollment_date"`
	Status          EnrollmentStatus `db:"status" json:"status"`
	Grade           *string          `db:"grade" json:"grade,omitempty"`
	SemesterOffered *string          `db:"semester_offered" json:"semester_offered,omitempty"`
}

// AvailableCourse is a catalog entry the student has no enrollment for.
type AvailableCourse struct {
	CourseID        string  `db:"course_id" json:"course_id"`
	Code            string  `db:"code" json:"code"`
	Title           string  `db:"title" json:"title"`
	Credits         int     `db:"credits" json:"credits"`
	Instructor      *string `db:"instructor" json:"instructor,omitempty"`
	SemesterOffered *string `db:"semester_offered" json:"semester_offered,omitempty"`
}

// StudentCourses partitions the catalog for a student.
type StudentCourses struct {
	Enrolled  []EnrolledCourse  `json:"enrolled"`
	Available []AvailableCourse `json:"available"`
}
