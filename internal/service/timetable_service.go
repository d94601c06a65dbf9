package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/HThanh-how/LBG/internal/models"
	appErrors "github.com/HThanh-how/LBG/pkg/errors"
)

type timetableRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.TimetableSlot, error)
	ReplaceForUser(ctx context.Context, userID string, slots []models.TimetableSlot) error
}

type reportInvalidator interface {
	InvalidateUser(ctx context.Context, userID string)
}

// TimetableService manages the recurring weekly timetable.
type TimetableService struct {
	repo    timetableRepository
	reports reportInvalidator
	logger  *zap.Logger
}

// NewTimetableService constructs a TimetableService.
func NewTimetableService(repo timetableRepository, reports reportInvalidator, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{repo: repo, reports: reports, logger: logger}
}

// List returns all timetable slots of a user in day/period order.
func (s *TimetableService) List(ctx context.Context, userID string) ([]models.TimetableSlot, error) {
	slots, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetable")
	}
	return slots, nil
}

// Replace swaps the user's entire timetable for the provided slots.
func (s *TimetableService) Replace(ctx context.Context, userID string, slots []models.TimetableSlot) ([]models.TimetableSlot, error) {
	for i, slot := range slots {
		if slot.DayOfWeek < models.WeekdayMonday || slot.DayOfWeek > models.WeekdayFriday {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("slot %d: day_of_week must be between 2 and 6", i))
		}
		if slot.PeriodIndex < 1 || slot.PeriodIndex > models.PeriodsPerDay {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("slot %d: period_index must be between 1 and %d", i, models.PeriodsPerDay))
		}
		if strings.TrimSpace(slot.SubjectName) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("slot %d: subject_name is required", i))
		}
	}

	if err := s.repo.ReplaceForUser(ctx, userID, slots); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace timetable")
	}

	if s.reports != nil {
		s.reports.InvalidateUser(ctx, userID)
	}

	s.logger.Info("timetable replaced", zap.String("user_id", userID), zap.Int("slots", len(slots)))
	return s.List(ctx, userID)
}
