package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/neu-portal/student-records-api/internal/models"
)

// AnnouncementRepository reads announcements authored elsewhere.
type AnnouncementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository creates the repository.
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// VisibleToDepartment returns global announcements plus those targeting the
// department, important first, then most recent.
func (r *AnnouncementRepository) VisibleToDepartment(ctx context.Context, departmentID string) ([]models.Announcement, error) {
	const query = `SELECT a.id, a.title, a.content, a.target_department, d.name AS department_name,
a.category, a.important, a.publish_date
FROM announcements a
LEFT JOIN departments d ON d.id = a.target_department
WHERE (a.target_department IS NULL OR a.target_department = $1)
AND a.category IS NOT NULL
ORDER BY a.important DESC, a.publish_date DESC`
	var announcements []models.Announcement
	if err := r.db.SelectContext(ctx, &announcements, query, departmentID); err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return announcements, nil
}
