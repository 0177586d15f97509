package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/neu-portal/student-records-api/internal/models"
)

// CourseRepository reads catalog reference data.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID returns a course by its ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, code, title, credits, instructor_id, semester_offered FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// EnrolledByStudent returns courses the student holds any enrollment in,
// including withdrawn ones, together with the enrollment state.
func (r *CourseRepository) EnrolledByStudent(ctx context.Context, studentID string) ([]models.EnrolledCourse, error) {
	const query = `SELECT c.id AS course_id, c.code, c.title, c.credits,
CASE WHEN i.id IS NULL THEN NULL ELSE i.first_name || ' ' || i.last_name END AS instructor,
e.enrollment_date, e.status, e.grade, c.semester_offered
FROM enrollments e
JOIN courses c ON c.id = e.course_id
LEFT JOIN instructors i ON i.id = c.instructor_id
WHERE e.student_id = $1
ORDER BY c.code`
	var courses []models.EnrolledCourse
	if err := r.db.SelectContext(ctx, &courses, query, studentID); err != nil {
		return nil, fmt.Errorf("list enrolled courses: %w", err)
	}
	return courses, nil
}

// AvailableForStudent returns catalog entries the student has never enrolled in.
func (r *CourseRepository) AvailableForStudent(ctx context.Context, studentID string) ([]models.AvailableCourse, error) {
	const query = `SELECT c.id AS course_id, c.code, c.title, c.credits,
CASE WHEN i.id IS NULL THEN NULL ELSE i.first_name || ' ' || i.last_name END AS instructor,
c.semester_offered
FROM courses c
LEFT JOIN instructors i ON i.id = c.instructor_id
WHERE c.id NOT IN (SELECT course_id FROM enrollments WHERE student_id = $1)
ORDER BY c.code`
	var courses []models.AvailableCourse
	if err := r.db.SelectContext(ctx, &courses, query, studentID); err != nil {
		return nil, fmt.Errorf("list available courses: %w", err)
	}
	return courses, nil
}
