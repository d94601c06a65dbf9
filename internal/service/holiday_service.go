package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/HThanh-how/LBG/internal/models"
	appErrors "github.com/HThanh-how/LBG/pkg/errors"
)

type holidayRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Holiday, error)
	ListByUserAndYear(ctx context.Context, userID string, year int) ([]models.Holiday, error)
	Create(ctx context.Context, rule *models.Holiday) error
	BulkCreate(ctx context.Context, rules []models.Holiday) error
	Delete(ctx context.Context, id, userID string) error
}

// HolidayService manages per-user holiday rules.
type HolidayService struct {
	repo    holidayRepository
	reports reportInvalidator
	logger  *zap.Logger
}

// NewHolidayService constructs a HolidayService.
func NewHolidayService(repo holidayRepository, reports reportInvalidator, logger *zap.Logger) *HolidayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayService{repo: repo, reports: reports, logger: logger}
}

// List returns the user's holiday rules in creation order.
func (s *HolidayService) List(ctx context.Context, userID string) ([]models.Holiday, error) {
	rules, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list holidays")
	}
	return rules, nil
}

// Create stores one holiday rule.
func (s *HolidayService) Create(ctx context.Context, rule *models.Holiday) (*models.Holiday, error) {
	if strings.TrimSpace(rule.HolidayName) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "holiday_name is required")
	}
	if rule.HolidayDate == nil && (rule.StartDate == nil || rule.EndDate == nil) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "either holiday_date or both start_date and end_date are required")
	}
	if rule.StartDate != nil && rule.EndDate != nil && rule.EndDate.Before(*rule.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must not precede start_date")
	}
	if rule.WeekNumber != nil && !ValidWeekNumber(*rule.WeekNumber) {
		return nil, appErrors.ErrInvalidWeek
	}
	if rule.IsOddDay && rule.IsEvenDay {
		return nil, appErrors.Clone(appErrors.ErrValidation, "is_odd_day and is_even_day are mutually exclusive")
	}
	if rule.IsMoved && rule.MovedToDate == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "moved_to_date is required for a moved holiday")
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create holiday")
	}

	if s.reports != nil {
		s.reports.InvalidateUser(ctx, rule.UserID)
	}
	return rule, nil
}

// Delete removes one of the user's holiday rules.
func (s *HolidayService) Delete(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return appErrors.FromError(err)
	}
	if s.reports != nil {
		s.reports.InvalidateUser(ctx, userID)
	}
	return nil
}

// CreateDefaults seeds the national holidays of one calendar year,
// skipping dates the user already covers. Returns the created rules.
func (s *HolidayService) CreateDefaults(ctx context.Context, userID string, year int) ([]models.Holiday, error) {
	existing, err := s.repo.ListByUserAndYear(ctx, userID, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list holidays")
	}

	rules := SeedsToHolidays(DefaultHolidays(year), existing, userID)
	if len(rules) == 0 {
		return []models.Holiday{}, nil
	}

	if err := s.repo.BulkCreate(ctx, rules); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed holidays")
	}

	if s.reports != nil {
		s.reports.InvalidateUser(ctx, userID)
	}

	s.logger.Info("default holidays seeded",
		zap.String("user_id", userID),
		zap.Int("year", year),
		zap.Int("created", len(rules)))
	return rules, nil
}
