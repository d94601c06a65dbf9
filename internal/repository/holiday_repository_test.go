package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/HThanh-how/LBG/internal/models"
)

func newHolidayRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func holidayRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "holiday_name", "holiday_date", "start_date", "end_date",
		"week_number", "is_odd_day", "is_even_day", "is_moved", "moved_to_date", "created_at",
	})
}

func TestHolidayRepositoryListByUser(t *testing.T) {
	db, mock, cleanup := newHolidayRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	date := time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC)
	rows := holidayRows().
		AddRow("hol-1", "user-1", "Quốc Khánh", date, nil, nil, nil, false, false, false, nil, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, holiday_name, holiday_date, start_date, end_date, week_number, is_odd_day, is_even_day, is_moved, moved_to_date, created_at FROM holidays WHERE user_id = $1 ORDER BY created_at, id")).
		WithArgs("user-1").
		WillReturnRows(rows)

	rules, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.Equal(t, "Quốc Khánh", rules[0].HolidayName)
	require.NotNil(t, rules[0].HolidayDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newHolidayRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO holidays")).
		WithArgs(sqlmock.AnyArg(), "user-1", "Tết Nguyên Đán", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), false, false, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rule := &models.Holiday{UserID: "user-1", HolidayName: "Tết Nguyên Đán"}
	require.NoError(t, repo.Create(context.Background(), rule))
	require.NotEmpty(t, rule.ID)
	require.False(t, rule.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepositoryBulkCreate(t *testing.T) {
	db, mock, cleanup := newHolidayRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO holidays")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO holidays")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rules := []models.Holiday{
		{UserID: "user-1", HolidayName: "Quốc Khánh"},
		{UserID: "user-1", HolidayName: "Giỗ Tổ Hùng Vương"},
	}
	require.NoError(t, repo.BulkCreate(context.Background(), rules))
	require.NotEmpty(t, rules[0].ID)
	require.NotEmpty(t, rules[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepositoryBulkCreateEmpty(t *testing.T) {
	db, mock, cleanup := newHolidayRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	require.NoError(t, repo.BulkCreate(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newHolidayRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM holidays WHERE id = $1 AND user_id = $2")).
		WithArgs("hol-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "hol-1", "user-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
