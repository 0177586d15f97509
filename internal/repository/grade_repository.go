package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/neu-portal/student-records-api/internal/models"
)

// GradeRepository provides the read projections behind GPA and grade
// listings. It never writes.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs the repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// GradedCredits returns one row per Completed enrollment whose grade has a
// grade_points entry. The inner join drops null and unrecognised grades from
// both the GPA numerator and denominator.
func (r *GradeRepository) GradedCredits(ctx context.Context, studentID string) ([]models.GradedCredit, error) {
	const query = `SELECT c.code AS course_code, c.credits, gp.point_value
FROM enrollments e
JOIN courses c ON c.id = e.course_id
JOIN grade_points gp ON gp.grade = e.grade
WHERE e.student_id = $1 AND e.status = $2
ORDER BY c.code`
	var credits []models.GradedCredit
	if err := r.db.SelectContext(ctx, &credits, query, studentID, models.EnrollmentStatusCompleted); err != nil {
		return nil, fmt.Errorf("list graded credits: %w", err)
	}
	return credits, nil
}

// CreditsInProgress sums course credits over Registered enrollments.
func (r *GradeRepository) CreditsInProgress(ctx context.Context, studentID string) (int, error) {
	const query = `SELECT COALESCE(SUM(c.credits), 0)
FROM enrollments e
JOIN courses c ON c.id = e.course_id
WHERE e.student_id = $1 AND e.status = $2`
	var credits int
	if err := r.db.GetContext(ctx, &credits, query, studentID, models.EnrollmentStatusRegistered); err != nil {
		return 0, fmt.Errorf("sum credits in progress: %w", err)
	}
	return credits, nil
}

// Rows returns the student's enrollments shaped for the grades screens.
func (r *GradeRepository) Rows(ctx context.Context, studentID string) ([]models.GradeRow, error) {
	const query = `SELECT e.id AS enrollment_id, c.code, c.title, c.credits, e.grade, e.status
FROM enrollments e
JOIN courses c ON c.id = e.course_id
WHERE e.student_id = $1
ORDER BY e.status DESC, c.code`
	var rows []models.GradeRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list grade rows: %w", err)
	}
	return rows, nil
}
