package models

import "time"

// CurriculumEntry is the Nth lesson of a subject in the teaching
// program ("chương trình giảng dạy"). Lesson indexes are ordered
// globally across the school year, not per week.
type CurriculumEntry struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	SubjectName string    `db:"subject_name" json:"subject_name"`
	LessonIndex int       `db:"lesson_index" json:"lesson_index"`
	LessonName  string    `db:"lesson_name" json:"lesson_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
