package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/neu-portal/student-records-api/internal/models"
	appErrors "github.com/neu-portal/student-records-api/pkg/errors"
)

type departmentResolver interface {
	DepartmentID(ctx context.Context, studentID string) (string, error)
}

type announcementReader interface {
	VisibleToDepartment(ctx context.Context, departmentID string) ([]models.Announcement, error)
}

// AnnouncementService filters announcements by a student's department.
// Announcements are authored elsewhere; this service only selects.
type AnnouncementService struct {
	students departmentResolver
	repo     announcementReader
	cache    summaryCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAnnouncementService constructs AnnouncementService.
func NewAnnouncementService(students departmentResolver, repo announcementReader, cache summaryCache, cacheTTL time.Duration, logger *zap.Logger) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{students: students, repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ListVisible returns announcements targeting the student's department plus
// global ones, important first, then most recent. The feed is cached per
// department since every student of a department sees the same list.
func (s *AnnouncementService) ListVisible(ctx context.Context, studentID string) ([]models.Announcement, error) {
	departmentID, err := s.students.DepartmentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve department")
	}

	cacheKey := fmt.Sprintf("announcements:dept:%s", departmentID)
	if s.cache != nil {
		var cached []models.Announcement
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("announcement cache read failed", zap.Error(err))
		}
	}

	announcements, err := s.repo.VisibleToDepartment(ctx, departmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list announcements")
	}
	if announcements == nil {
		announcements = []models.Announcement{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, announcements, s.cacheTTL); err != nil {
			s.logger.Warn("announcement cache write failed", zap.Error(err))
		}
	}
	return announcements, nil
}
