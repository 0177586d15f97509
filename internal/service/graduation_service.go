package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	appErrors "github.com/neu-portal/student-records-api/pkg/errors"
)

type graduationPromoter interface {
	PromoteIfComplete(ctx context.Context, studentID string) (bool, error)
}

// GraduationService derives a student's completion status from their
// enrollment set. It is invoked after an enrollment transitions into
// Completed status.
type GraduationService struct {
	students graduationPromoter
	logger   *zap.Logger
}

// NewGraduationService constructs GraduationService.
func NewGraduationService(students graduationPromoter, logger *zap.Logger) *GraduationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraduationService{students: students, logger: logger}
}

// Evaluate promotes the student to Graduated when every enrollment is
// Completed and at least one exists. Evaluating twice with unchanged data is
// a no-op, and an already Graduated student is never demoted; reverting
// graduation is an administrative action outside this service.
func (s *GraduationService) Evaluate(ctx context.Context, studentID string) (bool, error) {
	promoted, err := s.students.PromoteIfComplete(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to evaluate graduation")
	}
	if promoted {
		s.logger.Info("student graduated", zap.String("student_id", studentID))
	}
	return promoted, nil
}
