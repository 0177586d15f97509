package models

// GradePoint maps a letter grade to its numeric point value. Seeded once,
// immutable thereafter.
type GradePoint struct {
	Grade      string  `db:"grade" json:"grade"`
	PointValue float64 `db:"point_value" json:"point_value"`
}

// GradedCredit is one completed, graded enrollment joined to its course
// weight and recognised point value. Rows lacking a recognised grade never
// reach this struct; the grade_points join excludes them.
type GradedCredit struct {
	CourseCode string  `db:"course_code"`
	Credits    int     `db:"credits"`
	PointValue float64 `db:"point_value"`
}

// GradeRow is an enrollment presented on the grades screens.
type GradeRow struct {
	EnrollmentID string           `db:"enrollment_id" json:"enrollment_id"`
	Code         string           `db:"code" json:"code"`
	Title        string           `db:"title" json:"title"`
	Credits      int              `db:"credits" json:"credits"`
	Grade        *string          `db:"grade" json:"grade,omitempty"`
	Status       EnrollmentStatus `db:"status" json:"status"`
}

// GPASummary aggregates credit-weighted performance. GPA is a fixed
// two-decimal string so "0.00" survives JSON round-trips unchanged.
type GPASummary struct {
	GPA               string `json:"gpa"`
	CreditsCompleted  int    `json:"creditsCompleted"`
	CreditsInProgress int    `json:"creditsInProgress"`
}

// GradesGPASummary mirrors the grades-summary payload: the observed system
// derives current and cumulative GPA from the same completed set.
type GradesGPASummary struct {
	Current           string `json:"current"`
	Cumulative        string `json:"cumulative"`
	CreditsCompleted  int    `json:"creditsCompleted"`
	CreditsInProgress int    `json:"creditsInProgress"`
}

// GradesSummary composes the grades screens payload.
type GradesSummary struct {
	CurrentGrades   []GradeRow       `json:"currentGrades"`
	CompletedGrades []GradeRow       `json:"completedGrades"`
	GPASummary      GradesGPASummary `json:"gpaSummary"`
}

// CourseList partitions a student's courses strictly by enrollment status.
type CourseList struct {
	Current   []GradeRow `json:"current"`
	Completed []GradeRow `json:"completed"`
}
