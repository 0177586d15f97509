package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/neu-portal/student-records-api/internal/models"
)

// AssignmentRepository handles student assignment rows.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListByStudent returns the student's assignments ordered by due date.
func (r *AssignmentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.StudentAssignment, error) {
	const query = `SELECT sa.id, a.id AS assignment_id, a.title, a.description, a.due_date,
c.code AS course_code, c.title AS course_title, sa.submission_link, sa.submission_date,
sa.score, sa.feedback, sa.status
FROM student_assignments sa
JOIN assignments a ON a.id = sa.assignment_id
JOIN courses c ON c.id = a.course_id
WHERE sa.student_id = $1
ORDER BY a.due_date ASC`
	var assignments []models.StudentAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, studentID); err != nil {
		return nil, fmt.Errorf("list student assignments: %w", err)
	}
	return assignments, nil
}

// Submit records a submission link on the student's own row. sql.ErrNoRows is
// returned when the row does not exist or belongs to another student.
func (r *AssignmentRepository) Submit(ctx context.Context, id, studentID, submissionLink string) error {
	const query = `UPDATE student_assignments
SET submission_link = $3, submission_date = $4, status = $5
WHERE id = $1 AND student_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, studentID, submissionLink, time.Now().UTC(), models.AssignmentStatusSubmitted)
	if err != nil {
		return fmt.Errorf("submit assignment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("submit assignment result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
