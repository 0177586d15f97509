package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "Present"
	AttendanceStatusLate    AttendanceStatus = "Late"
	AttendanceStatusAbsent  AttendanceStatus = "Absent"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusLate, AttendanceStatusAbsent:
		return true
	default:
		return false
	}
}

// Attendance is a single class-session record belonging to one enrollment.
// Rows are authored by the attendance-recording collaborator; this service
// only reads them.
type Attendance struct {
	ID           string           `db:"id" json:"id"`
	EnrollmentID string           `db:"enrollment_id" json:"enrollment_id"`
	Date         time.Time        `db:"date" json:"date"`
	Status       AttendanceStatus `db:"status" json:"status"`
	Remarks      *string          `db:"remarks" json:"remarks,omitempty"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

// AttendanceRecord extends Attendance with course metadata for listings.
type AttendanceRecord struct {
	ID          string           `db:"id" json:"id"`
	Date        time.Time        `db:"date" json:"date"`
	Course      string           `db:"course" json:"course"`
	CourseTitle string           `db:"course_title" json:"course_title"`
	Status      AttendanceStatus `db:"status" json:"status"`
	Remarks     *string          `db:"remarks" json:"remarks,omitempty"`
}

// CourseAttendanceCounts are raw per-course tallies from the store.
type CourseAttendanceCounts struct {
	CourseCode  string `db:"course_code"`
	CourseTitle string `db:"course_title"`
	Present     int    `db:"present_count"`
	Late        int    `db:"late_count"`
	Absent      int    `db:"absent_count"`
	Total       int    `db:"total_classes"`
}

// CourseAttendance is the reported per-course summary. Percentage is always
// within [0, 100].
type CourseAttendance struct {
	Course     string `json:"course"`
	Title      string `json:"title"`
	Present    int    `json:"present"`
	Late       int    `json:"late"`
	Absent     int    `json:"absent"`
	Attended   int    `json:"attended"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// AttendanceTotals sums counts across all of a student's courses.
type AttendanceTotals struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
	Total   int `json:"total"`
}

// AttendanceSummary is the full attendance report for a student.
type AttendanceSummary struct {
	Overall  int                `json:"overall"`
	ByCourse []CourseAttendance `json:"byCourse"`
	Totals   AttendanceTotals   `json:"totals"`
}
