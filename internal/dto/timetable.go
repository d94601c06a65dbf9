package dto

// TimetableSlotInput is one recurring slot inside a replace request.
type TimetableSlotInput struct {
	DayOfWeek   int    `json:"day_of_week" validate:"required,min=2,max=6"`
	PeriodIndex int    `json:"period_index" validate:"required,min=1,max=5"`
	SubjectName string `json:"subject_name" validate:"required"`
}

// ReplaceTimetableRequest swaps the whole timetable.
type ReplaceTimetableRequest struct {
	Data []TimetableSlotInput `json:"data"`
}

// CurriculumEntryInput is one teaching-program row inside a replace
// request.
type CurriculumEntryInput struct {
	SubjectName string `json:"subject_name" validate:"required"`
	LessonIndex int    `json:"lesson_index" validate:"required,min=1"`
	LessonName  string `json:"lesson_name" validate:"required"`
}

// ReplaceCurriculumRequest swaps the whole teaching program.
type ReplaceCurriculumRequest struct {
	Data []CurriculumEntryInput `json:"data"`
}
