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

type studentStore interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindProfileByID(ctx context.Context, id string) (*models.StudentProfile, error)
	UpdateProfile(ctx context.Context, student *models.Student) error
}

type departmentReader interface {
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]models.Department, error)
}

// StudentService serves profile reads and updates. Graduation status is
// owned by the graduation evaluation; profile updates never touch it.
type StudentService struct {
	repo        studentStore
	departments departmentReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewStudentService constructs StudentService.
func NewStudentService(repo studentStore, departments departmentReader, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, departments: departments, validator: validate, logger: logger}
}

// Profile returns the student's profile with department context.
func (s *StudentService) Profile(ctx context.Context, studentID string) (*models.StudentProfile, error) {
	profile, err := s.repo.FindProfileByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return profile, nil
}

// UpdateProfile writes the mutable profile fields and returns the refreshed
// profile.
func (s *StudentService) UpdateProfile(ctx context.Context, studentID string, req models.UpdateProfileRequest) (*models.StudentProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	student, err := s.repo.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	exists, err := s.departments.Exists(ctx, req.DepartmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check department")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrValidation, "selected department does not exist")
	}

	dob, err := parseDate(req.DOB)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date of birth")
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.DepartmentID = req.DepartmentID
	student.Phone = req.Phone
	student.Address = req.Address
	student.City = req.City
	student.State = req.State
	student.ZipCode = req.ZipCode
	student.Country = req.Country
	student.DOB = dob
	student.Gender = req.Gender
	student.ProfileImageURL = req.ProfileImageURL

	if err := s.repo.UpdateProfile(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}
	return s.Profile(ctx, studentID)
}

// Departments lists the flat department reference data.
func (s *StudentService) Departments(ctx context.Context) ([]models.Department, error) {
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list departments")
	}
	if departments == nil {
		departments = []models.Department{}
	}
	return departments, nil
}
