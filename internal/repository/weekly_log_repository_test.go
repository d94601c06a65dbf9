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

func newWeeklyLogRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestWeeklyLogRepositoryListByUserAndWeek(t *testing.T) {
	db, mock, cleanup := newWeeklyLogRepoMock(t)
	defer cleanup()
	repo := NewWeeklyLogRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "week_number", "day_of_week", "period_index", "subject_name", "lesson_name", "notes", "created_at"}).
		AddRow("log-1", "user-1", 3, 2, 1, "TOÁN", "Ôn tập", "", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, week_number, day_of_week, period_index, subject_name, lesson_name, notes, created_at")).
		WithArgs("user-1", 3).
		WillReturnRows(rows)

	logs, err := repo.ListByUserAndWeek(context.Background(), "user-1", 3)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, "TOÁN", logs[0].SubjectName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWeeklyLogRepositoryReplaceForWeek(t *testing.T) {
	db, mock, cleanup := newWeeklyLogRepoMock(t)
	defer cleanup()
	repo := NewWeeklyLogRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM weekly_logs WHERE user_id = $1 AND week_number = $2")).
		WithArgs("user-1", 3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO weekly_logs")).
		WithArgs(sqlmock.AnyArg(), "user-1", 3, 2, 1, "TOÁN", "Ôn tập", "dời tiết", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	logs := []models.WeeklyLog{
		{DayOfWeek: 2, PeriodIndex: 1, SubjectName: "TOÁN", LessonName: "Ôn tập", Notes: "dời tiết"},
	}
	require.NoError(t, repo.ReplaceForWeek(context.Background(), "user-1", 3, logs))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWeeklyLogRepositoryReplaceForWeekEmptyClearsWeek(t *testing.T) {
	db, mock, cleanup := newWeeklyLogRepoMock(t)
	defer cleanup()
	repo := NewWeeklyLogRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM weekly_logs WHERE user_id = $1 AND week_number = $2")).
		WithArgs("user-1", 5).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceForWeek(context.Background(), "user-1", 5, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
