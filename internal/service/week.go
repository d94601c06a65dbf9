package service

import (
	"fmt"
	"time"

	"github.com/HThanh-how/LBG/internal/models"
)

// WeekStart returns the Monday of the given school-year week. Week 1
// begins on the first Monday on or after September 1 of the reference
// year; each following week adds seven days.
func WeekStart(referenceYear, weekNumber int) time.Time {
	day := time.Date(referenceYear, time.September, 1, 0, 0, 0, 0, time.UTC)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	return day.AddDate(0, 0, (weekNumber-1)*7)
}

// WeekDates returns the Monday and Friday bounding a school-year week.
func WeekDates(referenceYear, weekNumber int) (time.Time, time.Time) {
	start := WeekStart(referenceYear, weekNumber)
	return start, start.AddDate(0, 0, 4)
}

// WeekdayDate maps a 2..6 encoded weekday of the given week to its
// calendar date.
func WeekdayDate(referenceYear, weekNumber, dayOfWeek int) time.Time {
	return WeekStart(referenceYear, weekNumber).AddDate(0, 0, dayOfWeek-models.WeekdayMonday)
}

// ValidWeekNumber reports whether n is inside the 1..40 school year.
func ValidWeekNumber(n int) bool {
	return n >= models.MinWeekNumber && n <= models.MaxWeekNumber
}

// FormatVietnameseDate renders a date the way the printed report
// header expects it, e.g. "2 / 9 / 2025".
func FormatVietnameseDate(t time.Time) string {
	return fmt.Sprintf("%d / %d / %d", t.Day(), int(t.Month()), t.Year())
}
