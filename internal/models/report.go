package models

import "time"

// HolidaySubjectName is the subject marker emitted for holiday slots.
const HolidaySubjectName = "NGHỈ LỄ"

// ReportRow is one resolved (day, period) slot of a weekly report.
// DayLabel is non-empty only on the first row of each day; renderers
// depend on that to drive merged day cells.
type ReportRow struct {
	DayLabel    string `json:"day_label"`
	PeriodIndex int    `json:"period_index"`
	SubjectName string `json:"subject_name"`
	LessonName  string `json:"lesson_name"`
	Notes       string `json:"notes"`
}

// MovedLesson annotates a holiday slot whose lesson was rescheduled.
// It is reported alongside the rows, never merged into them.
type MovedLesson struct {
	HolidayName string    `json:"holiday_name"`
	DayOfWeek   int       `json:"day_of_week"`
	PeriodIndex int       `json:"period_index"`
	FromDate    time.Time `json:"from_date"`
	ToDate      time.Time `json:"to_date"`
}

// WeeklyReport is the resolved report for one week: always exactly
// 25 rows in Mon(p1..5)..Fri(p1..5) order.
type WeeklyReport struct {
	WeekNumber   int           `json:"week_number"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Rows         []ReportRow   `json:"data"`
	MovedLessons []MovedLesson `json:"moved_lessons,omitempty"`
}
