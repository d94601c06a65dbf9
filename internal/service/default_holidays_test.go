package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HThanh-how/LBG/internal/models"
)

func TestDefaultHolidaysFixedDates(t *testing.T) {
	seeds := DefaultHolidays(2030)

	// Unknown Tet year: only the four fixed holidays.
	require.Len(t, seeds, 4)
	assert.Equal(t, day(2030, 1, 1), seeds[0].Date)
	assert.Equal(t, day(2030, 4, 30), seeds[1].Date)
	assert.Equal(t, day(2030, 5, 1), seeds[2].Date)
	assert.Equal(t, day(2030, 9, 2), seeds[3].Date)
}

func TestDefaultHolidaysIncludesTetRange(t *testing.T) {
	seeds := DefaultHolidays(2025)

	require.Len(t, seeds, 4+7)
	tet := seeds[4:]
	assert.Equal(t, day(2025, 1, 29), tet[0].Date)
	assert.Equal(t, day(2025, 2, 4), tet[len(tet)-1].Date)
	for i, s := range tet {
		assert.Equal(t, "Tết Nguyên Đán", s.Name)
		assert.Equal(t, tet[0].Date.AddDate(0, 0, i), s.Date)
	}
}

func TestSeedsToHolidaysSkipsCoveredDates(t *testing.T) {
	seeds := []HolidaySeed{
		{Date: day(2025, 1, 1), Name: "Tết Dương lịch"},
		{Date: day(2025, 9, 2), Name: "Quốc khánh"},
	}
	existing := []models.Holiday{{
		HolidayName: "đã có",
		HolidayDate: func() *time.Time { d := day(2025, 1, 1); return &d }(),
	}}

	rules := SeedsToHolidays(seeds, existing, "user-1")

	require.Len(t, rules, 1)
	assert.Equal(t, "Quốc khánh", rules[0].HolidayName)
	assert.Equal(t, "user-1", rules[0].UserID)
	require.NotNil(t, rules[0].HolidayDate)
	assert.Equal(t, day(2025, 9, 2), *rules[0].HolidayDate)
}
