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

func newTimetableRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTimetableRepositoryListByUser(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "day_of_week", "period_index", "subject_name", "created_at"}).
		AddRow("slot-1", "user-1", 2, 1, "TOÁN", time.Now()).
		AddRow("slot-2", "user-1", 2, 2, "TIẾNG VIỆT", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, day_of_week, period_index, subject_name, created_at")).
		WithArgs("user-1").
		WillReturnRows(rows)

	slots, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	require.Equal(t, "TOÁN", slots[0].SubjectName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryReplaceForUser(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetables WHERE user_id = $1")).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetables")).
		WithArgs(sqlmock.AnyArg(), "user-1", 2, 1, "TOÁN", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	slots := []models.TimetableSlot{{DayOfWeek: 2, PeriodIndex: 1, SubjectName: "TOÁN"}}
	require.NoError(t, repo.ReplaceForUser(context.Background(), "user-1", slots))
	require.Equal(t, "user-1", slots[0].UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryReplaceForUserRollbackOnError(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetables WHERE user_id = $1")).
		WithArgs("user-1").
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	err := repo.ReplaceForUser(context.Background(), "user-1", nil)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
