package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/neu-portal/student-records-api/internal/models"
	appErrors "github.com/neu-portal/student-records-api/pkg/errors"
)

type attendanceReader interface {
	CourseCounts(ctx context.Context, studentID string) ([]models.CourseAttendanceCounts, error)
	Records(ctx context.Context, studentID string, limit int) ([]models.AttendanceRecord, error)
}

type summaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

const defaultRecordsLimit = 50

// AttendanceService computes per-course and overall attendance percentages
// from records joined through enrollments. Late counts toward attendance
// credit, Absent does not.
type AttendanceService struct {
	repo         attendanceReader
	cache        summaryCache
	cacheTTL     time.Duration
	recordsLimit int
	logger       *zap.Logger
}

// NewAttendanceService constructs AttendanceService.
func NewAttendanceService(repo attendanceReader, cache summaryCache, cacheTTL time.Duration, recordsLimit int, logger *zap.Logger) *AttendanceService {
	if recordsLimit <= 0 {
		recordsLimit = defaultRecordsLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, cache: cache, cacheTTL: cacheTTL, recordsLimit: recordsLimit, logger: logger}
}

// Summary reports the attendance percentages for a student. Raw ratios above
// 100% are data anomalies and clamp to 100; empty courses report 0% instead
// of dividing by zero.
func (s *AttendanceService) Summary(ctx context.Context, studentID string) (*models.AttendanceSummary, error) {
	cacheKey := fmt.Sprintf("attendance:summary:%s", studentID)
	if s.cache != nil {
		var cached models.AttendanceSummary
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("attendance summary cache read failed", zap.Error(err))
		}
	}

	counts, err := s.repo.CourseCounts(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count attendance")
	}

	summary := &models.AttendanceSummary{ByCourse: []models.CourseAttendance{}}
	for _, c := range counts {
		attended := c.Present + c.Late
		summary.ByCourse = append(summary.ByCourse, models.CourseAttendance{
			Course:     c.CourseCode,
			Title:      c.CourseTitle,
			Present:    c.Present,
			Late:       c.Late,
			Absent:     c.Absent,
			Attended:   attended,
			Total:      c.Total,
			Percentage: percentage(attended, c.Total),
		})
		summary.Totals.Present += c.Present
		summary.Totals.Late += c.Late
		summary.Totals.Absent += c.Absent
		summary.Totals.Total += c.Total
	}
	summary.Overall = percentage(summary.Totals.Present+summary.Totals.Late, summary.Totals.Total)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, summary, s.cacheTTL); err != nil {
			s.logger.Warn("attendance summary cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

// Records lists attendance rows most recent date first. The sequence is
// finite and restartable: each call re-queries the store.
func (s *AttendanceService) Records(ctx context.Context, studentID string, limit int) ([]models.AttendanceRecord, error) {
	if limit <= 0 || limit > s.recordsLimit {
		limit = s.recordsLimit
	}
	records, err := s.repo.Records(ctx, studentID, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance records")
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	return records, nil
}

// percentage reports attended/total as a whole percent clamped to [0, 100].
// A zero total defines the percentage as 0.
func percentage(attended, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(attended) / float64(total) * 100))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
