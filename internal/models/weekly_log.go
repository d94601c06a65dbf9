package models

import "time"

// School-year week numbers run 1..40.
const (
	MinWeekNumber = 1
	MaxWeekNumber = 40
)

// WeeklyLog is a user-entered correction for one slot of one specific
// week. It always wins over timetable/curriculum derived data.
type WeeklyLog struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	WeekNumber  int       `db:"week_number" json:"week_number"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	PeriodIndex int       `db:"period_index" json:"period_index"`
	SubjectName string    `db:"subject_name" json:"subject_name"`
	LessonName  string    `db:"lesson_name" json:"lesson_name"`
	Notes       string    `db:"notes" json:"notes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
