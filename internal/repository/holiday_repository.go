package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/HThanh-how/LBG/internal/models"
)

// HolidayRepository provides persistence for holiday rules.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository creates a new holiday repository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

const holidayColumns = `id, user_id, holiday_name, holiday_date, start_date, end_date, week_number, is_odd_day, is_even_day, is_moved, moved_to_date, created_at`

// ListByUser returns every holiday rule of a user in creation order.
// Rule ordering matters to the matcher, so the sort is part of the
// contract.
func (r *HolidayRepository) ListByUser(ctx context.Context, userID string) ([]models.Holiday, error) {
	query := fmt.Sprintf(`SELECT %s FROM holidays WHERE user_id = $1 ORDER BY created_at, id`, holidayColumns)
	rules := []models.Holiday{}
	if err := r.db.SelectContext(ctx, &rules, query, userID); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return rules, nil
}

// ListByUserAndYear returns the rules whose single date falls inside a
// calendar year. Used by default seeding to detect existing dates.
func (r *HolidayRepository) ListByUserAndYear(ctx context.Context, userID string, year int) ([]models.Holiday, error) {
	query := fmt.Sprintf(`SELECT %s FROM holidays
		WHERE user_id = $1 AND holiday_date >= $2 AND holiday_date <= $3 ORDER BY created_at, id`, holidayColumns)
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	rules := []models.Holiday{}
	if err := r.db.SelectContext(ctx, &rules, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("list holidays by year: %w", err)
	}
	return rules, nil
}

// Create inserts one holiday rule.
func (r *HolidayRepository) Create(ctx context.Context, rule *models.Holiday) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	rule.CreatedAt = time.Now().UTC()

	const query = `INSERT INTO holidays (id, user_id, holiday_name, holiday_date, start_date, end_date, week_number, is_odd_day, is_even_day, is_moved, moved_to_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		rule.ID, rule.UserID, rule.HolidayName, rule.HolidayDate, rule.StartDate, rule.EndDate,
		rule.WeekNumber, rule.IsOddDay, rule.IsEvenDay, rule.IsMoved, rule.MovedToDate, rule.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert holiday: %w", err)
	}
	return nil
}

// BulkCreate inserts multiple rules in one transaction, used by
// default seeding.
func (r *HolidayRepository) BulkCreate(ctx context.Context, rules []models.Holiday) error {
	if len(rules) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk holidays: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insert = `INSERT INTO holidays (id, user_id, holiday_name, holiday_date, start_date, end_date, week_number, is_odd_day, is_even_day, is_moved, moved_to_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	now := time.Now().UTC()
	for i := range rules {
		rule := &rules[i]
		if rule.ID == "" {
			rule.ID = uuid.NewString()
		}
		rule.CreatedAt = now
		if _, err := tx.ExecContext(ctx, insert,
			rule.ID, rule.UserID, rule.HolidayName, rule.HolidayDate, rule.StartDate, rule.EndDate,
			rule.WeekNumber, rule.IsOddDay, rule.IsEvenDay, rule.IsMoved, rule.MovedToDate, rule.CreatedAt); err != nil {
			return fmt.Errorf("insert holiday: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk holidays: %w", err)
	}
	return nil
}

// Delete removes one rule owned by the user. Missing rows are not an
// error.
func (r *HolidayRepository) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM holidays WHERE id = $1 AND user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, id, userID); err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}
	return nil
}
