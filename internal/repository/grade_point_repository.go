package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/neu-portal/student-records-api/internal/models"
)

// defaultGradePoints is the standard letter-grade scale seeded on startup.
var defaultGradePoints = []models.GradePoint{
	{Grade: "A", PointValue: 4.00},
	{Grade: "A-", PointValue: 3.70},
	{Grade: "B+", PointValue: 3.30},
	{Grade: "B", PointValue: 3.00},
	{Grade: "B-", PointValue: 2.70},
	{Grade: "C+", PointValue: 2.30},
	{Grade: "C", PointValue: 2.00},
	{Grade: "C-", PointValue: 1.70},
	{Grade: "D+", PointValue: 1.30},
	{Grade: "D", PointValue: 1.00},
	{Grade: "F", PointValue: 0.00},
}

// GradePointRepository reads the static grade scale.
type GradePointRepository struct {
	db *sqlx.DB
}

// NewGradePointRepository constructs the repository.
func NewGradePointRepository(db *sqlx.DB) *GradePointRepository {
	return &GradePointRepository{db: db}
}

// Seed inserts the standard scale when rows are missing. Existing rows are
// left untouched.
func (r *GradePointRepository) Seed(ctx context.Context) error {
	const query = `INSERT INTO grade_points (grade, point_value) VALUES ($1, $2) ON CONFLICT (grade) DO NOTHING`
	for _, gp := range defaultGradePoints {
		if _, err := r.db.ExecContext(ctx, query, gp.Grade, gp.PointValue); err != nil {
			return fmt.Errorf("seed grade point %s: %w", gp.Grade, err)
		}
	}
	return nil
}

// All returns the full grade scale ordered by point value descending.
func (r *GradePointRepository) All(ctx context.Context) ([]models.GradePoint, error) {
	var points []models.GradePoint
	if err := r.db.SelectContext(ctx, &points, "SELECT grade, point_value FROM grade_points ORDER BY point_value DESC"); err != nil {
		return nil, fmt.Errorf("list grade points: %w", err)
	}
	return points, nil
}

// Exists reports whether the letter grade is part of the scale.
func (r *GradePointRepository) Exists(ctx context.Context, grade string) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM grade_points WHERE grade = $1", grade)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check grade point: %w", err)
	}
	return true, nil
}
