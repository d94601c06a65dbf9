package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/HThanh-how/LBG/internal/models"
)

// CurriculumRepository provides persistence for teaching program entries.
type CurriculumRepository struct {
	db *sqlx.DB
}

// NewCurriculumRepository creates a new curriculum repository.
func NewCurriculumRepository(db *sqlx.DB) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

// ListByUser returns the user's whole teaching program ordered by
// subject and lesson index.
func (r *CurriculumRepository) ListByUser(ctx context.Context, userID string) ([]models.CurriculumEntry, error) {
	const query = `SELECT id, user_id, subject_name, lesson_index, lesson_name, created_at
		FROM teaching_programs WHERE user_id = $1 ORDER BY subject_name, lesson_index`
	entries := []models.CurriculumEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list curriculum: %w", err)
	}
	return entries, nil
}

// ReplaceForUser swaps the user's whole teaching program inside one
// transaction. Used by the file import flow.
func (r *CurriculumRepository) ReplaceForUser(ctx context.Context, userID string, entries []models.CurriculumEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace curriculum: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM teaching_programs WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear curriculum: %w", err)
	}

	const insert = `INSERT INTO teaching_programs (id, user_id, subject_name, lesson_index, lesson_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	now := time.Now().UTC()
	for i := range entries {
		entry := &entries[i]
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		entry.UserID = userID
		entry.CreatedAt = now
		if _, err := tx.ExecContext(ctx, insert,
			entry.ID, entry.UserID, entry.SubjectName, entry.LessonIndex, entry.LessonName, entry.CreatedAt); err != nil {
			return fmt.Errorf("insert curriculum entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace curriculum: %w", err)
	}
	return nil
}
