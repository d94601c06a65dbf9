package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/HThanh-how/LBG/internal/models"
)

// WeeklyLogRepository provides persistence for per-week slot overrides.
type WeeklyLogRepository struct {
	db *sqlx.DB
}

// NewWeeklyLogRepository creates a new weekly log repository.
func NewWeeklyLogRepository(db *sqlx.DB) *WeeklyLogRepository {
	return &WeeklyLogRepository{db: db}
}

// ListByUserAndWeek returns the overrides for one user and week in
// entry order.
func (r *WeeklyLogRepository) ListByUserAndWeek(ctx context.Context, userID string, weekNumber int) ([]models.WeeklyLog, error) {
	const query = `SELECT id, user_id, week_number, day_of_week, period_index, subject_name, lesson_name, notes, created_at
		FROM weekly_logs WHERE user_id = $1 AND week_number = $2 ORDER BY day_of_week, period_index, created_at`
	logs := []models.WeeklyLog{}
	if err := r.db.SelectContext(ctx, &logs, query, userID, weekNumber); err != nil {
		return nil, fmt.Errorf("list weekly logs: %w", err)
	}
	return logs, nil
}

// ReplaceForWeek swaps every override of one user/week for the given
// logs in one transaction. Saving a report is always a full rewrite of
// that week.
func (r *WeeklyLogRepository) ReplaceForWeek(ctx context.Context, userID string, weekNumber int, logs []models.WeeklyLog) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace weekly logs: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM weekly_logs WHERE user_id = $1 AND week_number = $2`, userID, weekNumber); err != nil {
		return fmt.Errorf("clear weekly logs: %w", err)
	}

	const insert = `INSERT INTO weekly_logs (id, user_id, week_number, day_of_week, period_index, subject_name, lesson_name, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	now := time.Now().UTC()
	for i := range logs {
		log := &logs[i]
		if log.ID == "" {
			log.ID = uuid.NewString()
		}
		log.UserID = userID
		log.WeekNumber = weekNumber
		log.CreatedAt = now
		if _, err := tx.ExecContext(ctx, insert,
			log.ID, log.UserID, log.WeekNumber, log.DayOfWeek, log.PeriodIndex,
			log.SubjectName, log.LessonName, log.Notes, log.CreatedAt); err != nil {
			return fmt.Errorf("insert weekly log: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace weekly logs: %w", err)
	}
	return nil
}
