package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/HThanh-how/LBG/internal/models"
	appErrors "github.com/HThanh-how/LBG/pkg/errors"
)

type reportTimetableRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.TimetableSlot, error)
}

type reportCurriculumRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.CurriculumEntry, error)
}

type reportWeeklyLogRepository interface {
	ListByUserAndWeek(ctx context.Context, userID string, weekNumber int) ([]models.WeeklyLog, error)
	ReplaceForWeek(ctx context.Context, userID string, weekNumber int, logs []models.WeeklyLog) error
}

type reportHolidayRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Holiday, error)
}

type cacheRecorder interface {
	RecordCacheOperation(hit bool)
}

// ReportConfig tunes report resolution.
type ReportConfig struct {
	CacheTTL      time.Duration
	ReferenceYear int
}

// ReportService assembles weekly reports from the stored snapshots and
// keeps a short-lived cache of resolved weeks.
type ReportService struct {
	timetables reportTimetableRepository
	curriculum reportCurriculumRepository
	weeklyLogs reportWeeklyLogRepository
	holidays   reportHolidayRepository
	cache      *redis.Client
	metrics    cacheRecorder
	logger     *zap.Logger
	cfg        ReportConfig
}

// NewReportService constructs a ReportService. The cache client and
// metrics recorder may be nil; without a cache every request resolves
// from the database.
func NewReportService(
	timetables reportTimetableRepository,
	curriculum reportCurriculumRepository,
	weeklyLogs reportWeeklyLogRepository,
	holidays reportHolidayRepository,
	cache *redis.Client,
	metrics cacheRecorder,
	logger *zap.Logger,
	cfg ReportConfig,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &ReportService{
		timetables: timetables,
		curriculum: curriculum,
		weeklyLogs: weeklyLogs,
		holidays:   holidays,
		cache:      cache,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg,
	}
}

// GetWeek resolves the full 25-row report for one week.
func (s *ReportService) GetWeek(ctx context.Context, userID string, weekNumber int) (*models.WeeklyReport, error) {
	if !ValidWeekNumber(weekNumber) {
		return nil, appErrors.ErrInvalidWeek
	}

	if cached := s.fromCache(ctx, userID, weekNumber); cached != nil {
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(true)
		}
		return cached, nil
	}
	if s.metrics != nil && s.cache != nil {
		s.metrics.RecordCacheOperation(false)
	}

	report, err := s.resolve(ctx, userID, weekNumber)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, userID, weekNumber, report)
	return report, nil
}

// SaveWeek replaces the override set for one week. The new overrides
// take effect immediately; the cached report for that week is dropped.
func (s *ReportService) SaveWeek(ctx context.Context, userID string, weekNumber int, logs []models.WeeklyLog) (*models.WeeklyReport, error) {
	if !ValidWeekNumber(weekNumber) {
		return nil, appErrors.ErrInvalidWeek
	}

	for i, log := range logs {
		if log.DayOfWeek < models.WeekdayMonday || log.DayOfWeek > models.WeekdayFriday {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("entry %d: day_of_week must be between 2 and 6", i))
		}
		if log.PeriodIndex < 1 || log.PeriodIndex > models.PeriodsPerDay {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("entry %d: period_index must be between 1 and %d", i, models.PeriodsPerDay))
		}
		if strings.TrimSpace(log.SubjectName) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("entry %d: subject_name is required", i))
		}
	}

	if err := s.weeklyLogs.ReplaceForWeek(ctx, userID, weekNumber, logs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save weekly log")
	}

	s.invalidate(ctx, userID, weekNumber)

	report, err := s.resolve(ctx, userID, weekNumber)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, userID, weekNumber, report)
	return report, nil
}

// InvalidateUser drops every cached week for the user. Called after
// timetable, curriculum or holiday mutations.
func (s *ReportService) InvalidateUser(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	for week := models.MinWeekNumber; week <= models.MaxWeekNumber; week++ {
		if err := s.cache.Del(ctx, s.cacheKey(userID, week)).Err(); err != nil {
			s.logger.Debug("report cache invalidation failed", zap.Error(err))
			return
		}
	}
}

func (s *ReportService) resolve(ctx context.Context, userID string, weekNumber int) (*models.WeeklyReport, error) {
	timetable, err := s.timetables.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}

	curriculum, err := s.curriculum.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teaching program")
	}

	overrides, err := s.weeklyLogs.ListByUserAndWeek(ctx, userID, weekNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load weekly log")
	}

	holidays, err := s.holidays.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holidays")
	}

	report := ResolveWeek(ResolveInput{
		Timetable:     timetable,
		Curriculum:    curriculum,
		Overrides:     overrides,
		Holidays:      holidays,
		WeekNumber:    weekNumber,
		ReferenceYear: s.cfg.ReferenceYear,
	})
	return &report, nil
}

func (s *ReportService) cacheKey(userID string, weekNumber int) string {
	return fmt.Sprintf("report:%s:%d", userID, weekNumber)
}

func (s *ReportService) fromCache(ctx context.Context, userID string, weekNumber int) *models.WeeklyReport {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cacheKey(userID, weekNumber)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("report cache read failed", zap.Error(err))
		}
		return nil
	}
	var report models.WeeklyReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil
	}
	return &report
}

func (s *ReportService) toCache(ctx context.Context, userID string, weekNumber int, report *models.WeeklyReport) {
	if s.cache == nil || report == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(userID, weekNumber), raw, s.cfg.CacheTTL).Err(); err != nil {
		s.logger.Debug("report cache write failed", zap.Error(err))
	}
}

func (s *ReportService) invalidate(ctx context.Context, userID string, weekNumber int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cacheKey(userID, weekNumber)).Err(); err != nil {
		s.logger.Debug("report cache invalidation failed", zap.Error(err))
	}
}
