package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/HThanh-how/LBG/internal/models"
	appErrors "github.com/HThanh-how/LBG/pkg/errors"
)

type curriculumRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.CurriculumEntry, error)
	ReplaceForUser(ctx context.Context, userID string, entries []models.CurriculumEntry) error
}

// CurriculumService manages the per-subject teaching program.
type CurriculumService struct {
	repo    curriculumRepository
	reports reportInvalidator
	logger  *zap.Logger
}

// NewCurriculumService constructs a CurriculumService.
func NewCurriculumService(repo curriculumRepository, reports reportInvalidator, logger *zap.Logger) *CurriculumService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CurriculumService{repo: repo, reports: reports, logger: logger}
}

// List returns all teaching-program entries of a user ordered by
// subject and lesson index.
func (s *CurriculumService) List(ctx context.Context, userID string) ([]models.CurriculumEntry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teaching program")
	}
	return entries, nil
}

// Replace swaps the user's entire teaching program for the provided
// entries.
func (s *CurriculumService) Replace(ctx context.Context, userID string, entries []models.CurriculumEntry) ([]models.CurriculumEntry, error) {
	for i, entry := range entries {
		if strings.TrimSpace(entry.SubjectName) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("entry %d: subject_name is required", i))
		}
		if entry.LessonIndex < 1 {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("entry %d: lesson_index must be positive", i))
		}
	}

	if err := s.repo.ReplaceForUser(ctx, userID, entries); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace teaching program")
	}

	if s.reports != nil {
		s.reports.InvalidateUser(ctx, userID)
	}

	s.logger.Info("teaching program replaced", zap.String("user_id", userID), zap.Int("entries", len(entries)))
	return s.List(ctx, userID)
}
