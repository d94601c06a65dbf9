package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/HThanh-how/LBG/internal/models"
)

// TimetableRepository provides persistence for recurring timetable slots.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository creates a new timetable repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// ListByUser returns the full timetable snapshot for one user, in a
// stable day/period order.
func (r *TimetableRepository) ListByUser(ctx context.Context, userID string) ([]models.TimetableSlot, error) {
	const query = `SELECT id, user_id, day_of_week, period_index, subject_name, created_at
		FROM timetables WHERE user_id = $1 ORDER BY day_of_week, period_index, created_at`
	slots := []models.TimetableSlot{}
	if err := r.db.SelectContext(ctx, &slots, query, userID); err != nil {
		return nil, fmt.Errorf("list timetable: %w", err)
	}
	return slots, nil
}

// ReplaceForUser swaps the user's whole timetable for the provided
// slots inside one transaction. Used by the file import flow.
func (r *TimetableRepository) ReplaceForUser(ctx context.Context, userID string, slots []models.TimetableSlot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace timetable: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM timetables WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear timetable: %w", err)
	}

	const insert = `INSERT INTO timetables (id, user_id, day_of_week, period_index, subject_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	now := time.Now().UTC()
	for i := range slots {
		slot := &slots[i]
		if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		slot.UserID = userID
		slot.CreatedAt = now
		if _, err := tx.ExecContext(ctx, insert,
			slot.ID, slot.UserID, slot.DayOfWeek, slot.PeriodIndex, slot.SubjectName, slot.CreatedAt); err != nil {
			return fmt.Errorf("insert timetable slot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace timetable: %w", err)
	}
	return nil
}
