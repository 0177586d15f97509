package models

import "time"

// Announcement is read-only to this service; authoring happens elsewhere.
// A null target department means the announcement is global.
type Announcement struct {
	ID               string    `db:"id" json:"announcement_id"`
	Title            string    `db:"title" json:"title"`
	Content          string    `db:"content" json:"content"`
	TargetDepartment *string   `db:"target_department" json:"target_department,omitempty"`
	DepartmentName   *string   `db:"department_name" json:"department_name,omitempty"`
	Category         *string   `db:"category" json:"category,omitempty"`
	Important        bool      `db:"important" json:"important"`
	PublishDate      time.Time `db:"publish_date" json:"publish_date"`
}
