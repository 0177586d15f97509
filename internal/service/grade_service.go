package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/neu-portal/student-records-api/internal/models"
	appErrors "github.com/neu-portal/student-records-api/pkg/errors"
	"github.com/neu-portal/student-records-api/pkg/export"
)

type gradeReader interface {
	GradedCredits(ctx context.Context, studentID string) ([]models.GradedCredit, error)
	CreditsInProgress(ctx context.Context, studentID string) (int, error)
	Rows(ctx context.Context, studentID string) ([]models.GradeRow, error)
}

type studentProfileReader interface {
	FindProfileByID(ctx context.Context, id string) (*models.StudentProfile, error)
}

// Transcript export formats.
const (
	TranscriptFormatCSV = "csv"
	TranscriptFormatPDF = "pdf"
)

// TranscriptDocument is a rendered transcript ready to stream.
type TranscriptDocument struct {
	Content     []byte
	ContentType string
	Filename    string
}

// GradeService computes GPA and credit totals from enrollments and the grade
// scale. It is a pure read projection, queried on demand and never cached.
type GradeService struct {
	repo     gradeReader
	students studentProfileReader
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewGradeService constructs GradeService.
func NewGradeService(repo gradeReader, students studentProfileReader, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, students: students, csv: csv, pdf: pdf, logger: logger}
}

// GpaSummary aggregates credit-weighted grade points over Completed, graded
// enrollments. An empty academic record is a valid state: the summary zeroes
// out instead of erroring, and the division by zero credits never happens.
func (s *GradeService) GpaSummary(ctx context.Context, studentID string) (*models.GPASummary, error) {
	credits, err := s.repo.GradedCredits(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load graded credits")
	}
	inProgress, err := s.repo.CreditsInProgress(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sum credits in progress")
	}

	gpa, completed := weightedGPA(credits)
	return &models.GPASummary{
		GPA:               gpa,
		CreditsCompleted:  completed,
		CreditsInProgress: inProgress,
	}, nil
}

// GradesSummary composes the grades screens payload: partitioned rows plus
// the GPA summary. Current and cumulative GPA are the same value; the
// enrollment model carries no term attribute to partition by.
func (s *GradeService) GradesSummary(ctx context.Context, studentID string) (*models.GradesSummary, error) {
	rows, err := s.repo.Rows(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	summary, err := s.GpaSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}

	current, completed := partitionRows(rows)
	return &models.GradesSummary{
		CurrentGrades:   current,
		CompletedGrades: completed,
		GPASummary: models.GradesGPASummary{
			Current:           summary.GPA,
			Cumulative:        summary.GPA,
			CreditsCompleted:  summary.CreditsCompleted,
			CreditsInProgress: summary.CreditsInProgress,
		},
	}, nil
}

// ListCourses partitions the student's courses strictly by enrollment status.
func (s *GradeService) ListCourses(ctx context.Context, studentID string) (*models.CourseList, error) {
	rows, err := s.repo.Rows(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	current, completed := partitionRows(rows)
	return &models.CourseList{Current: current, Completed: completed}, nil
}

// Transcript renders the student's completed record as CSV or PDF.
func (s *GradeService) Transcript(ctx context.Context, studentID, format string) (*TranscriptDocument, error) {
	profile, err := s.students.FindProfileByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	rows, err := s.repo.Rows(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	credits, err := s.repo.GradedCredits(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load graded credits")
	}
	gpa, completedCredits := weightedGPA(credits)

	dataset := export.Dataset{Headers: []string{"Code", "Title", "Credits", "Grade", "Status"}}
	for _, row := range rows {
		if row.Status != models.EnrollmentStatusCompleted {
			continue
		}
		grade := ""
		if row.Grade != nil {
			grade = *row.Grade
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Code":    row.Code,
			"Title":   row.Title,
			"Credits": strconv.Itoa(row.Credits),
			"Grade":   grade,
			"Status":  string(row.Status),
		})
	}

	switch format {
	case TranscriptFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
		}
		return &TranscriptDocument{Content: content, ContentType: "text/csv", Filename: "transcript.csv"}, nil
	case TranscriptFormatPDF:
		footer := []string{
			fmt.Sprintf("Student: %s %s (%s)", profile.FirstName, profile.LastName, profile.RegistrationNumber),
			fmt.Sprintf("GPA: %s", gpa),
			fmt.Sprintf("Credits completed: %d", completedCredits),
		}
		content, err := s.pdf.Render(dataset, "Academic Transcript", footer...)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
		}
		return &TranscriptDocument{Content: content, ContentType: "application/pdf", Filename: "transcript.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported transcript format")
	}
}

// weightedGPA returns the credit-weighted GPA as a two-decimal string and the
// completed credit total. Zero credits yields "0.00".
func weightedGPA(credits []models.GradedCredit) (string, int) {
	var points float64
	var total int
	for _, c := range credits {
		points += c.PointValue * float64(c.Credits)
		total += c.Credits
	}
	if total == 0 {
		return "0.00", 0
	}
	gpa := math.Round(points/float64(total)*100) / 100
	return fmt.Sprintf("%.2f", gpa), total
}

func partitionRows(rows []models.GradeRow) (current, completed []models.GradeRow) {
	current = []models.GradeRow{}
	completed = []models.GradeRow{}
	for _, row := range rows {
		switch row.Status {
		case models.EnrollmentStatusRegistered:
			current = append(current, row)
		case models.EnrollmentStatusCompleted:
			completed = append(completed, row)
		}
	}
	return current, completed
}
