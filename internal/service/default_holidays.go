package service

import (
	"time"

	"github.com/HThanh-how/LBG/internal/models"
)

// HolidaySeed is one default national holiday date.
type HolidaySeed struct {
	Date time.Time
	Name string
}

// tetRanges holds the lunar new year break per supported calendar
// year. Years outside the table get no Tet entries.
var tetRanges = map[int]struct{ start, end time.Time }{
	2024: {date(2024, 2, 10), date(2024, 2, 16)},
	2025: {date(2025, 1, 29), date(2025, 2, 4)},
	2026: {date(2026, 2, 17), date(2026, 2, 23)},
}

// DefaultHolidays returns the fixed Vietnamese national holidays for a
// year: New Year, Reunification Day, Labour Day and National Day, plus
// the Tet break when the year is in the lookup table.
func DefaultHolidays(year int) []HolidaySeed {
	seeds := []HolidaySeed{
		{Date: date(year, 1, 1), Name: "Tết Dương lịch"},
		{Date: date(year, 4, 30), Name: "Ngày Giải phóng miền Nam"},
		{Date: date(year, 5, 1), Name: "Ngày Quốc tế Lao động"},
		{Date: date(year, 9, 2), Name: "Quốc khánh"},
	}

	if tet, ok := tetRanges[year]; ok {
		for d := tet.start; !d.After(tet.end); d = d.AddDate(0, 0, 1) {
			seeds = append(seeds, HolidaySeed{Date: d, Name: "Tết Nguyên Đán"})
		}
	}

	return seeds
}

// SeedsToHolidays converts seeds into single-date holiday rules for a
// user, skipping dates the user already has a rule for.
func SeedsToHolidays(seeds []HolidaySeed, existing []models.Holiday, userID string) []models.Holiday {
	taken := make(map[time.Time]struct{}, len(existing))
	for _, h := range existing {
		if h.HolidayDate != nil {
			taken[dateOnly(*h.HolidayDate)] = struct{}{}
		}
	}

	out := make([]models.Holiday, 0, len(seeds))
	for _, seed := range seeds {
		if _, ok := taken[seed.Date]; ok {
			continue
		}
		d := seed.Date
		out = append(out, models.Holiday{
			UserID:      userID,
			HolidayName: seed.Name,
			HolidayDate: &d,
		})
	}
	return out
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
