package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/neu-portal/student-records-api/internal/models"
	"github.com/neu-portal/student-records-api/pkg/config"
	appErrors "github.com/neu-portal/student-records-api/pkg/errors"
)

type fakeStudentAccounts struct {
	byEmail  map[string]*models.Student
	profiles map[string]*models.StudentProfile
	created  *models.Student
}

func (f *fakeStudentAccounts) FindByEmail(_ context.Context, email string) (*models.Student, error) {
	if s, ok := f.byEmail[email]; ok {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentAccounts) FindProfileByID(_ context.Context, id string) (*models.StudentProfile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentAccounts) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeStudentAccounts) Create(_ context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = "stu-new"
	}
	f.created = student
	if f.profiles == nil {
		f.profiles = make(map[string]*models.StudentProfile)
	}
	f.profiles[student.ID] = &models.StudentProfile{Student: *student, DepartmentName: "Computer Science"}
	return nil
}

type fakeDepartmentChecker struct {
	known map[string]bool
}

func (f *fakeDepartmentChecker) Exists(_ context.Context, id string) (bool, error) {
	return f.known[id], nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "student-records-api"}
}

func validSignup() models.SignupRequest {
	return models.SignupRequest{
		DepartmentID:       "dept-cs",
		Email:              "ada@example.edu",
		Password:           "hunter22",
		FirstName:          "Ada",
		LastName:           "Okafor",
		RegistrationNumber: "NEU-2025-001",
	}
}

func TestSignupIssuesVerifiableToken(t *testing.T) {
	students := &fakeStudentAccounts{byEmail: map[string]*models.Student{}}
	departments := &fakeDepartmentChecker{known: map[string]bool{"dept-cs": true}}
	svc := NewAuthService(students, departments, testJWTConfig(), nil, nil)

	resp, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	require.NotNil(t, students.created)

	assert.Equal(t, models.StudentStatusActive, students.created.Status)
	assert.False(t, students.created.EnrollmentDate.IsZero())
	assert.NotEqual(t, "hunter22", students.created.PasswordHash)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, students.created.ID, claims.StudentID)
	assert.Equal(t, "ada@example.edu", claims.Email)
}

func TestSignupRejectsUnknownDepartment(t *testing.T) {
	students := &fakeStudentAccounts{byEmail: map[string]*models.Student{}}
	svc := NewAuthService(students, &fakeDepartmentChecker{}, testJWTConfig(), nil, nil)

	_, err := svc.Signup(context.Background(), validSignup())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Nil(t, students.created)
}

func TestSignupRejectsTakenEmail(t *testing.T) {
	students := &fakeStudentAccounts{byEmail: map[string]*models.Student{
		"ada@example.edu": {ID: "stu-1"},
	}}
	departments := &fakeDepartmentChecker{known: map[string]bool{"dept-cs": true}}
	svc := NewAuthService(students, departments, testJWTConfig(), nil, nil)

	_, err := svc.Signup(context.Background(), validSignup())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrEmailTaken.Code, appErr.Code)
}

func TestSignupRejectsMissingFields(t *testing.T) {
	svc := NewAuthService(&fakeStudentAccounts{}, &fakeDepartmentChecker{}, testJWTConfig(), nil, nil)

	req := validSignup()
	req.RegistrationNumber = ""
	_, err := svc.Signup(context.Background(), req)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	require.NoError(t, err)
	students := &fakeStudentAccounts{byEmail: map[string]*models.Student{
		"ada@example.edu": {ID: "stu-1", Email: "ada@example.edu", PasswordHash: string(hash)},
	}}
	svc := NewAuthService(students, &fakeDepartmentChecker{}, testJWTConfig(), nil, nil)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.edu", Password: "wrong"})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := NewAuthService(&fakeStudentAccounts{}, &fakeDepartmentChecker{}, testJWTConfig(), nil, nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.edu", Password: "whatever"})
	require.Error(t, err)

	// Unknown account and bad password are indistinguishable to the caller.
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestLoginSucceeds(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	students := &fakeStudentAccounts{
		byEmail: map[string]*models.Student{
			"ada@example.edu": {ID: "stu-1", Email: "ada@example.edu", PasswordHash: string(hash)},
		},
		profiles: map[string]*models.StudentProfile{
			"stu-1": {Student: models.Student{ID: "stu-1", Email: "ada@example.edu"}},
		},
	}
	svc := NewAuthService(students, &fakeDepartmentChecker{}, testJWTConfig(), nil, nil)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.edu", Password: "hunter22"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "stu-1", claims.StudentID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	students := &fakeStudentAccounts{byEmail: map[string]*models.Student{}}
	departments := &fakeDepartmentChecker{known: map[string]bool{"dept-cs": true}}
	issuer := NewAuthService(students, departments, testJWTConfig(), nil, nil)

	resp, err := issuer.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	other := NewAuthService(students, departments, config.JWTConfig{Secret: "different", Expiration: time.Hour}, nil, nil)
	_, err = other.ValidateToken(resp.Token)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
