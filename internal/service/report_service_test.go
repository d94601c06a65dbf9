package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HThanh-how/LBG/internal/models"
	appErrors "github.com/HThanh-how/LBG/pkg/errors"
)

type fakeTimetableRepo struct {
	slots []models.TimetableSlot
	err   error
}

func (f *fakeTimetableRepo) ListByUser(ctx context.Context, userID string) ([]models.TimetableSlot, error) {
	return f.slots, f.err
}

type fakeCurriculumRepo struct {
	entries []models.CurriculumEntry
}

func (f *fakeCurriculumRepo) ListByUser(ctx context.Context, userID string) ([]models.CurriculumEntry, error) {
	return f.entries, nil
}

type fakeWeeklyLogRepo struct {
	logs       []models.WeeklyLog
	replaced   []models.WeeklyLog
	replaceErr error
}

func (f *fakeWeeklyLogRepo) ListByUserAndWeek(ctx context.Context, userID string, weekNumber int) ([]models.WeeklyLog, error) {
	return f.logs, nil
}

func (f *fakeWeeklyLogRepo) ReplaceForWeek(ctx context.Context, userID string, weekNumber int, logs []models.WeeklyLog) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = logs
	f.logs = logs
	return nil
}

type fakeHolidayRepo struct {
	holidays []models.Holiday
}

func (f *fakeHolidayRepo) ListByUser(ctx context.Context, userID string) ([]models.Holiday, error) {
	return f.holidays, nil
}

func newTestReportService(tt *fakeTimetableRepo, wl *fakeWeeklyLogRepo) *ReportService {
	return NewReportService(
		tt,
		&fakeCurriculumRepo{},
		wl,
		&fakeHolidayRepo{},
		nil,
		nil,
		nil,
		ReportConfig{ReferenceYear: testYear},
	)
}

func TestReportServiceGetWeekInvalidWeek(t *testing.T) {
	svc := newTestReportService(&fakeTimetableRepo{}, &fakeWeeklyLogRepo{})

	for _, week := range []int{0, -3, 41} {
		_, err := svc.GetWeek(context.Background(), "user-1", week)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrInvalidWeek, err)
	}
}

func TestReportServiceGetWeekResolvesFromRepos(t *testing.T) {
	tt := &fakeTimetableRepo{slots: []models.TimetableSlot{
		{UserID: "user-1", DayOfWeek: 2, PeriodIndex: 1, SubjectName: "TOÁN"},
	}}
	svc := newTestReportService(tt, &fakeWeeklyLogRepo{})

	report, err := svc.GetWeek(context.Background(), "user-1", 1)
	require.NoError(t, err)

	require.Len(t, report.Rows, 25)
	assert.Equal(t, 1, report.WeekNumber)
	assert.Equal(t, "TOÁN", report.Rows[0].SubjectName)
}

func TestReportServiceGetWeekRepoError(t *testing.T) {
	tt := &fakeTimetableRepo{err: errors.New("db down")}
	svc := newTestReportService(tt, &fakeWeeklyLogRepo{})

	_, err := svc.GetWeek(context.Background(), "user-1", 1)
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}

func TestReportServiceSaveWeekValidation(t *testing.T) {
	svc := newTestReportService(&fakeTimetableRepo{}, &fakeWeeklyLogRepo{})

	cases := []struct {
		name string
		log  models.WeeklyLog
	}{
		{"day too small", models.WeeklyLog{DayOfWeek: 1, PeriodIndex: 1, SubjectName: "TOÁN"}},
		{"day too large", models.WeeklyLog{DayOfWeek: 7, PeriodIndex: 1, SubjectName: "TOÁN"}},
		{"period too small", models.WeeklyLog{DayOfWeek: 2, PeriodIndex: 0, SubjectName: "TOÁN"}},
		{"period too large", models.WeeklyLog{DayOfWeek: 2, PeriodIndex: 6, SubjectName: "TOÁN"}},
		{"blank subject", models.WeeklyLog{DayOfWeek: 2, PeriodIndex: 1, SubjectName: "   "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SaveWeek(context.Background(), "user-1", 1, []models.WeeklyLog{tc.log})
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestReportServiceSaveWeekAppliesOverrides(t *testing.T) {
	wl := &fakeWeeklyLogRepo{}
	svc := newTestReportService(&fakeTimetableRepo{}, wl)

	report, err := svc.SaveWeek(context.Background(), "user-1", 3, []models.WeeklyLog{
		{DayOfWeek: 2, PeriodIndex: 1, SubjectName: "TOÁN", LessonName: "Ôn tập", Notes: "dời tiết"},
	})
	require.NoError(t, err)

	require.Len(t, wl.replaced, 1)
	assert.Equal(t, "TOÁN", report.Rows[0].SubjectName)
	assert.Equal(t, "Ôn tập", report.Rows[0].LessonName)
	assert.Equal(t, "dời tiết", report.Rows[0].Notes)
}

func TestReportServiceSaveWeekInvalidWeek(t *testing.T) {
	svc := newTestReportService(&fakeTimetableRepo{}, &fakeWeeklyLogRepo{})

	_, err := svc.SaveWeek(context.Background(), "user-1", 0, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidWeek, err)
}

func TestReportServiceSaveWeekStoreError(t *testing.T) {
	wl := &fakeWeeklyLogRepo{replaceErr: errors.New("write failed")}
	svc := newTestReportService(&fakeTimetableRepo{}, wl)

	_, err := svc.SaveWeek(context.Background(), "user-1", 1, []models.WeeklyLog{
		{DayOfWeek: 2, PeriodIndex: 1, SubjectName: "TOÁN"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
