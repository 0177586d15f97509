package models

import "time"

// StudentStatus represents the lifecycle of a student record.
type StudentStatus string

// Possible student statuses. A student is never deleted; Inactive and
// Graduated are soft states.
const (
	StudentStatusActive    StudentStatus = "Active"
	StudentStatusInactive  StudentStatus = "Inactive"
	StudentStatusGraduated StudentStatus = "Graduated"
)

// Student represents a learner registered in the institution. Profile fields
// the signup form does not require are nullable pointers.
type Student struct {
	ID                 string        `db:"id" json:"student_id"`
	FirstName          string        `db:"first_name" json:"first_name"`
	LastName           string        `db:"last_name" json:"last_name"`
	Email              string        `db:"email" json:"email"`
	PasswordHash       string        `db:"password_hash" json:"-"`
	RegistrationNumber string        `db:"registration_number" json:"registration_number"`
	DepartmentID       string        `db:"department_id" json:"department_id"`
	Status             StudentStatus `db:"status" json:"status"`
	EnrollmentDate     time.Time     `db:"enrollment_date" json:"enrollment_date"`
	Phone              *string       `db:"phone" json:"phone,omitempty"`
	Address            *string       `db:"address" json:"address,omitempty"`
	City               *string       `db:"city" json:"city,omitempty"`
	State              *string       `db:"state" json:"state,omitempty"`
	ZipCode            *string       `db:"zip_code" json:"zip_code,omitempty"`
	Country            *string       `db:"country" json:"country,omitempty"`
	DOB                *time.Time    `db:"dob" json:"dob,omitempty"`
	Gender             *string       `db:"gender" json:"gender,omitempty"`
	ProfileImageURL    *string       `db:"profile_image_url" json:"profile_image_url,omitempty"`
	CreatedAt          time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at" json:"updated_at"`
}

// StudentProfile enriches Student with department context for display.
type StudentProfile struct {
	Student
	DepartmentName string `db:"department_name" json:"department_name"`
}
