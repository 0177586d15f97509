package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neu-portal/student-records-api/internal/models"
	appErrors "github.com/neu-portal/student-records-api/pkg/errors"
)

type fakeEnrollmentRepo struct {
	created   *models.Enrollment
	createErr error
	byID      map[string]*models.Enrollment
	details   map[string]*models.EnrollmentDetail
	list      []models.EnrollmentDetail
	grades    map[string]string
	statuses  map[string]models.EnrollmentStatus
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	if f.createErr != nil {
		return f.createErr
	}
	if enrollment.ID == "" {
		enrollment.ID = "enr-new"
	}
	f.created = enrollment
	return nil
}

func (f *fakeEnrollmentRepo) FindByID(_ context.Context, id string) (*models.Enrollment, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEnrollmentRepo) FindDetailByID(_ context.Context, id string) (*models.EnrollmentDetail, error) {
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEnrollmentRepo) ListByStudent(_ context.Context, _ string) ([]models.EnrollmentDetail, error) {
	return f.list, nil
}

func (f *fakeEnrollmentRepo) SetGrade(_ context.Context, id, grade string) error {
	if f.grades == nil {
		f.grades = make(map[string]string)
	}
	f.grades[id] = grade
	return nil
}

func (f *fakeEnrollmentRepo) UpdateStatus(_ context.Context, id string, status models.EnrollmentStatus) error {
	if f.statuses == nil {
		f.statuses = make(map[string]models.EnrollmentStatus)
	}
	f.statuses[id] = status
	return nil
}

type fakeCourseReader struct {
	courses   map[string]*models.Course
	enrolled  []models.EnrolledCourse
	available []models.AvailableCourse
}

func (f *fakeCourseReader) FindByID(_ context.Context, id string) (*models.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCourseReader) EnrolledByStudent(_ context.Context, _ string) ([]models.EnrolledCourse, error) {
	return f.enrolled, nil
}

func (f *fakeCourseReader) AvailableForStudent(_ context.Context, _ string) ([]models.AvailableCourse, error) {
	return f.available, nil
}

type fakeStudentReader struct {
	students map[string]*models.Student
}

func (f *fakeStudentReader) FindByID(_ context.Context, id string) (*models.Student, error) {
	if s, ok := f.students[id]; ok {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

type fakeGradeScale struct {
	known map[string]bool
}

func (f *fakeGradeScale) Exists(_ context.Context, grade string) (bool, error) {
	return f.known[grade], nil
}

type fakeGraduationEvaluator struct {
	calls       int
	lastID      string
	promote     bool
	evaluateErr error
}

func (f *fakeGraduationEvaluator) Evaluate(_ context.Context, studentID string) (bool, error) {
	f.calls++
	f.lastID = studentID
	if f.evaluateErr != nil {
		return false, f.evaluateErr
	}
	return f.promote, nil
}

func newEnrollmentFixtures() (*fakeEnrollmentRepo, *fakeCourseReader, *fakeStudentReader, *fakeGradeScale, *fakeGraduationEvaluator) {
	repo := &fakeEnrollmentRepo{
		byID:    map[string]*models.Enrollment{},
		details: map[string]*models.EnrollmentDetail{},
	}
	courses := &fakeCourseReader{courses: map[string]*models.Course{
		"course-1": {ID: "course-1", Code: "CS101", Title: "Programming I", Credits: 3},
	}}
	students := &fakeStudentReader{students: map[string]*models.Student{
		"stu-1": {ID: "stu-1", Status: models.StudentStatusActive},
	}}
	scale := &fakeGradeScale{known: map[string]bool{"A": true, "B+": true, "F": true}}
	graduation := &fakeGraduationEvaluator{}
	return repo, courses, students, scale, graduation
}

func TestEnrollDefaultsDateToToday(t *testing.T) {
	repo, courses, students, scale, graduation := newEnrollmentFixtures()
	repo.details["enr-new"] = &models.EnrollmentDetail{
		Enrollment: models.Enrollment{ID: "enr-new", StudentID: "stu-1", CourseID: "course-1", Status: models.EnrollmentStatusRegistered},
		CourseCode: "CS101",
	}
	svc := NewEnrollmentService(repo, courses, students, scale, graduation, nil, nil)

	before := time.Now().UTC()
	detail, err := svc.Enroll(context.Background(), "stu-1", EnrollRequest{CourseID: "course-1"})
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.Equal(t, models.EnrollmentStatusRegistered, repo.created.Status)
	assert.False(t, repo.created.EnrollmentDate.Before(before))
	assert.False(t, repo.created.EnrollmentDate.After(time.Now().UTC()))
	assert.Equal(t, "CS101", detail.CourseCode)
}

func TestEnrollKeepsExplicitDate(t *testing.T) {
	repo, courses, students, scale, graduation := newEnrollmentFixtures()
	repo.details["enr-new"] = &models.EnrollmentDetail{Enrollment: models.Enrollment{ID: "enr-new"}}
	svc := NewEnrollmentService(repo, courses, students, scale, graduation, nil, nil)

	date := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Enroll(context.Background(), "stu-1", EnrollRequest{CourseID: "course-1", EnrollmentDate: &date})
	require.NoError(t, err)
	assert.Equal(t, date, repo.created.EnrollmentDate)
}

func TestEnrollDuplicateSurfacesConflict(t *testing.T) {
	repo, courses, students, scale, graduation := newEnrollmentFixtures()
	repo.createErr = appErrors.ErrDuplicateEnrollment
	svc := NewEnrollmentService(repo, courses, students, scale, graduation, nil, nil)

	_, err := svc.Enroll(context.Background(), "stu-1", EnrollRequest{CourseID: "course-1"})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrDuplicateEnrollment.Code, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestEnrollUnknownCourse(t *testing.T) {
	repo, courses, students, scale, graduation := newEnrollmentFixtures()
	svc := NewEnrollmentService(repo, courses, students, scale, graduation, nil, nil)

	_, err := svc.Enroll(context.Background(), "stu-1", EnrollRequest{CourseID: "missing"})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Nil(t, repo.created)
}

func TestSetGradeCompletesAndEvaluatesGraduation(t *testing.T) {
	repo, courses, students, scale, graduation := newEnrollmentFixtures()
	repo.byID["enr-1"] = &models.Enrollment{ID: "enr-1", StudentID: "stu-1", Status: models.EnrollmentStatusRegistered}
	repo.details["enr-1"] = &models.EnrollmentDetail{
		Enrollment: models.Enrollment{ID: "enr-1", StudentID: "stu-1", Status: models.EnrollmentStatusCompleted},
	}
	svc := NewEnrollmentService(repo, courses, students, scale, graduation, nil, nil)

	_, err := svc.SetGrade(context.Background(), "enr-1", SetGradeRequest{Grade: "A"})
	require.NoError(t, err)

	assert.Equal(t, "A", repo.grades["enr-1"])
	assert.Equal(t, 1, graduation.calls)
	assert.Equal(t, "stu-1", graduation.lastID)
}

func TestSetGradeRegrade(t *testing.T) {
	repo, courses, students, scale, graduation := newEnrollmentFixtures()
	oldGrade := "B+"
	repo.byID["enr-1"] = &models.Enrollment{ID: "enr-1", StudentID: "stu-1", Status: models.EnrollmentStatusCompleted, Grade: &oldGrade}
	repo.details["enr-1"] = &models.EnrollmentDetail{Enrollment: models.Enrollment{ID: "enr-1"}}
	svc := NewEnrollmentService(repo, courses, students, scale, graduation, nil, nil)

	_, err := svc.SetGrade(context.Background(), "enr-1", SetGradeRequest{Grade: "A"})
	require.NoError(t, err)
	assert.Equal(t, "A", repo.grades["enr-1"])
}

func TestSetGradeRejectsWithdrawnEnrollment(t *testing.T) {
	repo, courses, students, scale, graduation := newEnrollmentFixtures()
	repo.byID["enr-1"] = &models.Enrollment{ID: "enr-1", StudentID: "stu-1", Status: models.EnrollmentStatusWithdrawn}
	svc := NewEnrollmentService(repo, courses, students, scale, graduation, nil, nil)

	_, err := svc.SetGrade(context.Background(), "enr-1", SetGradeRequest{Grade: "A"})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Empty(t, repo.grades)
	assert.Zero(t, graduation.calls)
}

func TestSetGradeRejectsUnknownGrade(t *testing.T) {
	repo, courses, students, scale, graduation := newEnrollmentFixtures()
	repo.byID["enr-1"] = &models.Enrollment{ID: "enr-1", StudentID: "stu-1", Status: models.EnrollmentStatusRegistered}
	svc := NewEnrollmentService(repo, courses, students, scale, graduation, nil, nil)

	_, err := svc.SetGrade(context.Background(), "enr-1", SetGradeRequest{Grade: "Z"})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUnknownGrade.Code, appErr.Code)
	assert.Empty(t, repo.grades)
	assert.Zero(t, graduation.calls)
}

func TestWithdrawFreesThePair(t *testing.T) {
	repo, courses, students, scale, graduation := newEnrollmentFixtures()
	repo.byID["enr-1"] = &models.Enrollment{ID: "enr-1", StudentID: "stu-1", Status: models.EnrollmentStatusRegistered}
	repo.details["enr-1"] = &models.EnrollmentDetail{
		Enrollment: models.Enrollment{ID: "enr-1", Status: models.EnrollmentStatusWithdrawn},
	}
	svc := NewEnrollmentService(repo, courses, students, scale, graduation, nil, nil)

	detail, err := svc.Withdraw(context.Background(), "enr-1")
	require.NoError(t, err)

	assert.Equal(t, models.EnrollmentStatusWithdrawn, repo.statuses["enr-1"])
	assert.Equal(t, models.EnrollmentStatusWithdrawn, detail.Status)
	// Withdrawing never completes a record, so it never triggers graduation.
	assert.Zero(t, graduation.calls)
}

func TestWithdrawRejectsAlreadyWithdrawn(t *testing.T) {
	repo, courses, students, scale, graduation := newEnrollmentFixtures()
	repo.byID["enr-1"] = &models.Enrollment{ID: "enr-1", StudentID: "stu-1", Status: models.EnrollmentStatusWithdrawn}
	svc := NewEnrollmentService(repo, courses, students, scale, graduation, nil, nil)

	_, err := svc.Withdraw(context.Background(), "enr-1")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Empty(t, repo.statuses)
}

func TestCoursesForStudentNeverNil(t *testing.T) {
	repo, courses, students, scale, graduation := newEnrollmentFixtures()
	svc := NewEnrollmentService(repo, courses, students, scale, graduation, nil, nil)

	got, err := svc.CoursesForStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.NotNil(t, got.Enrolled)
	assert.NotNil(t, got.Available)
	assert.Empty(t, got.Enrolled)
}
