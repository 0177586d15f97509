package models

import "time"

// AssignmentStatus tracks a student's submission lifecycle.
type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "Pending"
	AssignmentStatusSubmitted AssignmentStatus = "Submitted"
	AssignmentStatusGraded    AssignmentStatus = "Graded"
)

// StudentAssignment joins a student's submission row with the assignment and
// course, ordered by due date on listing.
type StudentAssignment struct {
	ID             string           `db:"id" json:"student_assignment_id"`
	AssignmentID   string           `db:"assignment_id" json:"assignment_id"`
	Title          string           `db:"title" json:"title"`
	Description    *string          `db:"description" json:"description,omitempty"`
	DueDate        time.Time        `db:"due_date" json:"due_date"`
	CourseCode     string           `db:"course_code" json:"course_code"`
	CourseTitle    string           `db:"course_title" json:"course_title"`
	SubmissionLink *string          `db:"submission_link" json:"submission_link,omitempty"`
	SubmissionDate *time.Time       `db:"submission_date" json:"submission_date,omitempty"`
	Score          *float64         `db:"score" json:"score,omitempty"`
	Feedback       *string          `db:"feedback" json:"feedback,omitempty"`
	Status         AssignmentStatus `db:"status" json:"status"`
}
