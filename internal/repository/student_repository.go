package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/neu-portal/student-records-api/internal/models"
)

// StudentRepository handles persistence of students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, first_name, last_name, email, password_hash, registration_number,
department_id, status, enrollment_date, phone, address, city, state, zip_code, country,
dob, gender, profile_image_url, created_at, updated_at`

// FindByID returns a student by its ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByEmail returns a student by email.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE email = $1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, email); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindProfileByID returns the student joined with department info.
func (r *StudentRepository) FindProfileByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	const query = `SELECT s.id, s.first_name, s.last_name, s.email, s.password_hash,
s.registration_number, s.department_id, s.status, s.enrollment_date, s.phone, s.address,
s.city, s.state, s.zip_code, s.country, s.dob, s.gender, s.profile_image_url,
s.created_at, s.updated_at, d.name AS department_name
FROM students s
JOIN departments d ON d.id = s.department_id
WHERE s.id = $1`
	var profile models.StudentProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, err
	}
	return &profile, nil
}

// EmailExists reports whether a student already uses the email.
func (r *StudentRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM students WHERE email = $1 LIMIT 1", email)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student email: %w", err)
	}
	return true, nil
}

// Create persists a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.Status == "" {
		student.Status = models.StudentStatusActive
	}
	if student.EnrollmentDate.IsZero() {
		student.EnrollmentDate = now
	}
	student.CreatedAt = now
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, first_name, last_name, email, password_hash,
registration_number, department_id, status, enrollment_date, phone, address, city, state,
zip_code, country, dob, gender, profile_image_url, created_at, updated_at)
VALUES (:id, :first_name, :last_name, :email, :password_hash, :registration_number,
:department_id, :status, :enrollment_date, :phone, :address, :city, :state, :zip_code,
:country, :dob, :gender, :profile_image_url, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// UpdateProfile writes the mutable profile columns.
func (r *StudentRepository) UpdateProfile(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET first_name = :first_name, last_name = :last_name,
phone = :phone, address = :address, city = :city, state = :state, zip_code = :zip_code,
country = :country, dob = :dob, gender = :gender, department_id = :department_id,
profile_image_url = :profile_image_url, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student profile: %w", err)
	}
	return nil
}

// DepartmentID resolves the department a student belongs to.
func (r *StudentRepository) DepartmentID(ctx context.Context, studentID string) (string, error) {
	var departmentID string
	if err := r.db.GetContext(ctx, &departmentID, "SELECT department_id FROM students WHERE id = $1", studentID); err != nil {
		return "", err
	}
	return departmentID, nil
}

// PromoteIfComplete atomically promotes a student to Graduated when every
// enrollment is Completed and at least one enrollment exists. The student row
// is locked for the duration so two concurrent completions cannot both read a
// stale tally and miss the promotion. The promotion never reverts an already
// Graduated student.
func (r *StudentRepository) PromoteIfComplete(ctx context.Context, studentID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin graduation tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var status models.StudentStatus
	if err := tx.GetContext(ctx, &status, "SELECT status FROM students WHERE id = $1 FOR UPDATE", studentID); err != nil {
		return false, err
	}
	if status == models.StudentStatusGraduated {
		return false, tx.Commit()
	}

	var tally models.EnrollmentTally
	const tallyQuery = `SELECT COUNT(*) AS total,
COUNT(*) FILTER (WHERE status = $2) AS completed
FROM enrollments WHERE student_id = $1`
	if err := tx.GetContext(ctx, &tally, tallyQuery, studentID, models.EnrollmentStatusCompleted); err != nil {
		return false, fmt.Errorf("tally enrollments: %w", err)
	}

	if tally.Total == 0 || tally.Total != tally.Completed {
		return false, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, "UPDATE students SET status = $2, updated_at = NOW() WHERE id = $1",
		studentID, models.StudentStatusGraduated); err != nil {
		return false, fmt.Errorf("promote student: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit graduation tx: %w", err)
	}
	return true, nil
}
