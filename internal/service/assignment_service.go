package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/neu-portal/student-records-api/internal/models"
	appErrors "github.com/neu-portal/student-records-api/pkg/errors"
)

type assignmentRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.StudentAssignment, error)
	Submit(ctx context.Context, id, studentID, submissionLink string) error
}

// SubmitAssignmentRequest carries the submission link for an assignment.
type SubmitAssignmentRequest struct {
	SubmissionLink string `json:"submissionLink" validate:"required,url"`
}

// AssignmentService lists a student's assignments and records submissions.
// Scoring and feedback are written by instructors elsewhere.
type AssignmentService struct {
	repo      assignmentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs AssignmentService.
func NewAssignmentService(repo assignmentRepository, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, validator: validate, logger: logger}
}

// List returns the student's assignments ordered by due date.
func (s *AssignmentService) List(ctx context.Context, studentID string) ([]models.StudentAssignment, error) {
	assignments, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	if assignments == nil {
		assignments = []models.StudentAssignment{}
	}
	return assignments, nil
}

// Submit stores the submission link on the student's own assignment row.
func (s *AssignmentService) Submit(ctx context.Context, studentID, assignmentID string, req SubmitAssignmentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}
	if err := s.repo.Submit(ctx, assignmentID, studentID, req.SubmissionLink); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit assignment")
	}
	return nil
}
