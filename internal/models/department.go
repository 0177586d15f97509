package models

// Department is immutable reference data scoping students and announcements.
type Department struct {
	ID   string `db:"id" json:"department_id"`
	Name string `db:"name" json:"name"`
}

// Instructor is reference data attached to courses.
type Instructor struct {
	ID        string `db:"id" json:"instructor_id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}
