package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/neu-portal/student-records-api/internal/models"
)

// AttendanceRepository reads attendance rows authored by the recording
// collaborator.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// CourseCounts tallies attendance per course for the student.
func (r *AttendanceRepository) CourseCounts(ctx context.Context, studentID string) ([]models.CourseAttendanceCounts, error) {
	const query = `SELECT c.code AS course_code, c.title AS course_title,
COUNT(*) AS total_classes,
COUNT(*) FILTER (WHERE a.status = 'Present') AS present_count,
COUNT(*) FILTER (WHERE a.status = 'Late') AS late_count,
COUNT(*) FILTER (WHERE a.status = 'Absent') AS absent_count
FROM attendance a
JOIN enrollments e ON e.id = a.enrollment_id
JOIN courses c ON c.id = e.course_id
WHERE e.student_id = $1
GROUP BY c.code, c.title
ORDER BY c.code`
	var counts []models.CourseAttendanceCounts
	if err := r.db.SelectContext(ctx, &counts, query, studentID); err != nil {
		return nil, fmt.Errorf("count attendance by course: %w", err)
	}
	return counts, nil
}

// Records lists the student's attendance rows, most recent date first. The
// query is re-run on every call; there is no live subscription.
func (r *AttendanceRepository) Records(ctx context.Context, studentID string, limit int) ([]models.AttendanceRecord, error) {
	const query = `SELECT a.id, a.date, c.code AS course, c.title AS course_title, a.status, a.remarks
FROM attendance a
JOIN enrollments e ON e.id = a.enrollment_id
JOIN courses c ON c.id = e.course_id
WHERE e.student_id = $1
ORDER BY a.date DESC, a.created_at DESC
LIMIT $2`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID, limit); err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	return records, nil
}
