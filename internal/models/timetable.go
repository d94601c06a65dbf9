package models

import "time"

// Weekday encoding used across the timetable and weekly logs:
// 2 = Monday .. 6 = Friday, matching Vietnamese "Thứ 2".."Thứ 6".
const (
	WeekdayMonday = 2
	WeekdayFriday = 6
)

// PeriodsPerDay is the number of teaching periods in one school day.
const PeriodsPerDay = 5

// TimetableSlot is a recurring weekly subject assignment for one
// (day, period) slot, independent of week number.
type TimetableSlot struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	PeriodIndex int       `db:"period_index" json:"period_index"`
	SubjectName string    `db:"subject_name" json:"subject_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// DayLabel returns the display label for a weekday in the 2..6 encoding.
func DayLabel(dayOfWeek int) string {
	switch dayOfWeek {
	case 2:
		return "Thứ 2"
	case 3:
		return "Thứ 3"
	case 4:
		return "Thứ 4"
	case 5:
		return "Thứ 5"
	case 6:
		return "Thứ 6"
	default:
		return ""
	}
}
