package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neu-portal/student-records-api/internal/models"
	appErrors "github.com/neu-portal/student-records-api/pkg/errors"
	"github.com/neu-portal/student-records-api/pkg/export"
)

type fakeGradeReader struct {
	credits    []models.GradedCredit
	inProgress int
	rows       []models.GradeRow
}

func (f *fakeGradeReader) GradedCredits(_ context.Context, _ string) ([]models.GradedCredit, error) {
	return f.credits, nil
}

func (f *fakeGradeReader) CreditsInProgress(_ context.Context, _ string) (int, error) {
	return f.inProgress, nil
}

func (f *fakeGradeReader) Rows(_ context.Context, _ string) ([]models.GradeRow, error) {
	return f.rows, nil
}

type fakeProfileReader struct {
	profile *models.StudentProfile
}

func (f *fakeProfileReader) FindProfileByID(_ context.Context, _ string) (*models.StudentProfile, error) {
	if f.profile == nil {
		return nil, sql.ErrNoRows
	}
	return f.profile, nil
}

func newGradeService(reader *fakeGradeReader, students *fakeProfileReader) *GradeService {
	return NewGradeService(reader, students, export.NewCSVExporter(), export.NewPDFExporter(), nil)
}

func strPtr(s string) *string { return &s }

func TestGpaSummaryWeightsByCredits(t *testing.T) {
	reader := &fakeGradeReader{
		credits: []models.GradedCredit{
			{CourseCode: "CS101", Credits: 3, PointValue: 4.00},
			{CourseCode: "MA201", Credits: 3, PointValue: 3.00},
		},
		inProgress: 4,
	}
	svc := newGradeService(reader, &fakeProfileReader{})

	summary, err := svc.GpaSummary(context.Background(), "stu-1")
	require.NoError(t, err)

	assert.Equal(t, "3.50", summary.GPA)
	assert.Equal(t, 6, summary.CreditsCompleted)
	assert.Equal(t, 4, summary.CreditsInProgress)
}

func TestGpaSummaryRoundsHalfUp(t *testing.T) {
	reader := &fakeGradeReader{
		credits: []models.GradedCredit{
			{CourseCode: "CS101", Credits: 4, PointValue: 4.00},
			{CourseCode: "MA201", Credits: 3, PointValue: 3.00},
		},
	}
	svc := newGradeService(reader, &fakeProfileReader{})

	summary, err := svc.GpaSummary(context.Background(), "stu-1")
	require.NoError(t, err)
	// 25 points over 7 credits is 3.5714..., reported to two decimals.
	assert.Equal(t, "3.57", summary.GPA)
}

func TestGpaSummaryEmptyRecord(t *testing.T) {
	svc := newGradeService(&fakeGradeReader{}, &fakeProfileReader{})

	summary, err := svc.GpaSummary(context.Background(), "stu-1")
	require.NoError(t, err)

	assert.Equal(t, "0.00", summary.GPA)
	assert.Zero(t, summary.CreditsCompleted)
	assert.Zero(t, summary.CreditsInProgress)
}

func TestGradesSummaryCurrentEqualsCumulative(t *testing.T) {
	reader := &fakeGradeReader{
		credits: []models.GradedCredit{{CourseCode: "CS101", Credits: 3, PointValue: 4.00}},
		rows: []models.GradeRow{
			{EnrollmentID: "enr-1", Code: "CS101", Credits: 3, Grade: strPtr("A"), Status: models.EnrollmentStatusCompleted},
			{EnrollmentID: "enr-2", Code: "MA201", Credits: 3, Status: models.EnrollmentStatusRegistered},
			{EnrollmentID: "enr-3", Code: "PH101", Credits: 2, Status: models.EnrollmentStatusWithdrawn},
		},
	}
	svc := newGradeService(reader, &fakeProfileReader{})

	summary, err := svc.GradesSummary(context.Background(), "stu-1")
	require.NoError(t, err)

	assert.Equal(t, summary.GPASummary.Current, summary.GPASummary.Cumulative)
	assert.Equal(t, "4.00", summary.GPASummary.Current)
	require.Len(t, summary.CurrentGrades, 1)
	require.Len(t, summary.CompletedGrades, 1)
	// Withdrawn rows belong to neither partition.
	assert.Equal(t, "MA201", summary.CurrentGrades[0].Code)
	assert.Equal(t, "CS101", summary.CompletedGrades[0].Code)
}

func TestTranscriptCSVContainsOnlyCompletedRows(t *testing.T) {
	reader := &fakeGradeReader{
		credits: []models.GradedCredit{{CourseCode: "CS101", Credits: 3, PointValue: 4.00}},
		rows: []models.GradeRow{
			{EnrollmentID: "enr-1", Code: "CS101", Title: "Programming I", Credits: 3, Grade: strPtr("A"), Status: models.EnrollmentStatusCompleted},
			{EnrollmentID: "enr-2", Code: "MA201", Title: "Calculus", Credits: 3, Status: models.EnrollmentStatusRegistered},
		},
	}
	students := &fakeProfileReader{profile: &models.StudentProfile{
		Student: models.Student{FirstName: "Ada", LastName: "Okafor", RegistrationNumber: "NEU-2025-001"},
	}}
	svc := newGradeService(reader, students)

	doc, err := svc.Transcript(context.Background(), "stu-1", TranscriptFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", doc.ContentType)
	assert.Equal(t, "transcript.csv", doc.Filename)
	content := string(doc.Content)
	assert.True(t, strings.HasPrefix(content, "Code,Title,Credits,Grade,Status"))
	assert.Contains(t, content, "CS101")
	assert.NotContains(t, content, "MA201")
}

func TestTranscriptPDFRenders(t *testing.T) {
	reader := &fakeGradeReader{
		rows: []models.GradeRow{
			{EnrollmentID: "enr-1", Code: "CS101", Title: "Programming I", Credits: 3, Grade: strPtr("A"), Status: models.EnrollmentStatusCompleted},
		},
	}
	students := &fakeProfileReader{profile: &models.StudentProfile{
		Student: models.Student{FirstName: "Ada", LastName: "Okafor", RegistrationNumber: "NEU-2025-001"},
	}}
	svc := newGradeService(reader, students)

	doc, err := svc.Transcript(context.Background(), "stu-1", TranscriptFormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))
}

func TestTranscriptUnknownStudent(t *testing.T) {
	svc := newGradeService(&fakeGradeReader{}, &fakeProfileReader{})

	_, err := svc.Transcript(context.Background(), "missing", TranscriptFormatCSV)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestTranscriptUnsupportedFormat(t *testing.T) {
	students := &fakeProfileReader{profile: &models.StudentProfile{}}
	svc := newGradeService(&fakeGradeReader{}, students)

	_, err := svc.Transcript(context.Background(), "stu-1", "xlsx")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
