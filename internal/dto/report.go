package dto

// WeeklyLogEntry is one slot correction inside a save request.
type WeeklyLogEntry struct {
	DayOfWeek   int    `json:"day_of_week" validate:"required,min=2,max=6"`
	PeriodIndex int    `json:"period_index" validate:"required,min=1,max=5"`
	SubjectName string `json:"subject_name" validate:"required"`
	LessonName  string `json:"lesson_name"`
	Notes       string `json:"notes"`
}

// SaveWeekRequest replaces the override set of one week. An empty
// data array clears every override.
type SaveWeekRequest struct {
	Data []WeeklyLogEntry `json:"data"`
}
