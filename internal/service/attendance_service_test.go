package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neu-portal/student-records-api/internal/models"
	appErrors "github.com/neu-portal/student-records-api/pkg/errors"
)

type fakeAttendanceReader struct {
	counts      []models.CourseAttendanceCounts
	records     []models.AttendanceRecord
	countCalls  int
	recordCalls int
	lastLimit   int
}

func (f *fakeAttendanceReader) CourseCounts(_ context.Context, _ string) ([]models.CourseAttendanceCounts, error) {
	f.countCalls++
	return f.counts, nil
}

func (f *fakeAttendanceReader) Records(_ context.Context, _ string, limit int) ([]models.AttendanceRecord, error) {
	f.recordCalls++
	f.lastLimit = limit
	return f.records, nil
}

type stubCache struct {
	store map[string][]byte
}

func (s *stubCache) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func TestAttendanceSummaryPercentages(t *testing.T) {
	reader := &fakeAttendanceReader{counts: []models.CourseAttendanceCounts{
		{CourseCode: "CS101", CourseTitle: "Programming I", Present: 8, Late: 1, Absent: 1, Total: 10},
		{CourseCode: "MA201", CourseTitle: "Calculus", Present: 3, Late: 0, Absent: 7, Total: 10},
	}}
	svc := NewAttendanceService(reader, nil, 0, 50, nil)

	summary, err := svc.Summary(context.Background(), "stu-1")
	require.NoError(t, err)

	require.Len(t, summary.ByCourse, 2)
	assert.Equal(t, 90, summary.ByCourse[0].Percentage)
	assert.Equal(t, 9, summary.ByCourse[0].Attended)
	assert.Equal(t, 30, summary.ByCourse[1].Percentage)
	// Overall is 12 attended of 20, not an average of the course rates.
	assert.Equal(t, 60, summary.Overall)
	assert.Equal(t, 20, summary.Totals.Total)
}

func TestAttendanceSummaryClampsAnomalies(t *testing.T) {
	reader := &fakeAttendanceReader{counts: []models.CourseAttendanceCounts{
		{CourseCode: "CS101", Present: 12, Late: 0, Absent: 0, Total: 10},
	}}
	svc := NewAttendanceService(reader, nil, 0, 50, nil)

	summary, err := svc.Summary(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, 100, summary.ByCourse[0].Percentage)
	assert.Equal(t, 100, summary.Overall)
}

func TestAttendanceSummaryEmptyCourse(t *testing.T) {
	reader := &fakeAttendanceReader{counts: []models.CourseAttendanceCounts{
		{CourseCode: "CS101", Present: 0, Late: 0, Absent: 0, Total: 0},
	}}
	svc := NewAttendanceService(reader, nil, 0, 50, nil)

	summary, err := svc.Summary(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.ByCourse[0].Percentage)
	assert.Equal(t, 0, summary.Overall)
}

func TestAttendanceSummaryNoCourses(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceReader{}, nil, 0, 50, nil)

	summary, err := svc.Summary(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.NotNil(t, summary.ByCourse)
	assert.Empty(t, summary.ByCourse)
	assert.Equal(t, 0, summary.Overall)
}

func TestAttendanceSummaryCached(t *testing.T) {
	reader := &fakeAttendanceReader{counts: []models.CourseAttendanceCounts{
		{CourseCode: "CS101", Present: 5, Total: 10},
	}}
	svc := NewAttendanceService(reader, &stubCache{}, time.Minute, 50, nil)

	first, err := svc.Summary(context.Background(), "stu-1")
	require.NoError(t, err)
	second, err := svc.Summary(context.Background(), "stu-1")
	require.NoError(t, err)

	assert.Equal(t, 1, reader.countCalls)
	assert.Equal(t, first.Overall, second.Overall)
}

func TestAttendanceRecordsClampsLimit(t *testing.T) {
	reader := &fakeAttendanceReader{records: []models.AttendanceRecord{}}
	svc := NewAttendanceService(reader, nil, 0, 50, nil)

	_, err := svc.Records(context.Background(), "stu-1", 500)
	require.NoError(t, err)
	assert.Equal(t, 50, reader.lastLimit)

	_, err = svc.Records(context.Background(), "stu-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 50, reader.lastLimit)

	_, err = svc.Records(context.Background(), "stu-1", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, reader.lastLimit)
}

func TestAttendanceRecordsNeverNil(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceReader{}, nil, 0, 50, nil)

	records, err := svc.Records(context.Background(), "stu-1", 5)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
