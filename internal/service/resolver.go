package service

import (
	"github.com/HThanh-how/LBG/internal/models"
)

// slotKey addresses one (weekday, period) slot within a week.
type slotKey struct {
	Day    int
	Period int
}

// lessonKey addresses one lesson of a subject in the teaching program.
type lessonKey struct {
	Subject string
	Index   int
}

// ResolveInput bundles the four snapshots the resolver reconciles.
// All collections are read-only; the resolver holds no state between
// calls.
type ResolveInput struct {
	Timetable     []models.TimetableSlot
	Curriculum    []models.CurriculumEntry
	Overrides     []models.WeeklyLog
	Holidays      []models.Holiday
	WeekNumber    int
	ReferenceYear int
}

// ResolveWeek produces the weekly report for one week: exactly 25 rows
// in Mon(p1..5)..Fri(p1..5) order, regardless of how complete the
// inputs are. Per-slot precedence is: weekly log override, then
// holiday, then timetable+curriculum lookup, then an empty row.
//
// The curriculum position of a timetable-derived slot is computed, not
// stored: a subject taught k periods per week is at lesson
// (week-1)*k + n for its nth occurrence of the week, shifted when the
// subject's program does not start numbering at 1. Missing curriculum
// entries resolve to an empty lesson name, never an error.
func ResolveWeek(in ResolveInput) models.WeeklyReport {
	start, end := WeekDates(in.ReferenceYear, in.WeekNumber)

	slots := make(map[slotKey]string, len(in.Timetable))
	for _, t := range in.Timetable {
		key := slotKey{Day: t.DayOfWeek, Period: t.PeriodIndex}
		// Duplicate assignments for one slot keep the first entry;
		// deterministic for a given input ordering, nothing stronger.
		if _, ok := slots[key]; !ok {
			slots[key] = t.SubjectName
		}
	}

	periodsPerWeek := make(map[string]int)
	for _, subject := range slots {
		periodsPerWeek[subject]++
	}

	lessons := make(map[lessonKey]string, len(in.Curriculum))
	minLessonIndex := make(map[string]int)
	for _, entry := range in.Curriculum {
		lessons[lessonKey{Subject: entry.SubjectName, Index: entry.LessonIndex}] = entry.LessonName
		if min, ok := minLessonIndex[entry.SubjectName]; !ok || entry.LessonIndex < min {
			minLessonIndex[entry.SubjectName] = entry.LessonIndex
		}
	}

	overrides := make(map[slotKey]models.WeeklyLog, len(in.Overrides))
	for _, log := range in.Overrides {
		key := slotKey{Day: log.DayOfWeek, Period: log.PeriodIndex}
		if _, ok := overrides[key]; !ok {
			overrides[key] = log
		}
	}

	report := models.WeeklyReport{
		WeekNumber: in.WeekNumber,
		StartDate:  start,
		EndDate:    end,
		Rows:       make([]models.ReportRow, 0, 25),
	}

	// Occurrence counters live for this call only: subject → week →
	// count of periods already emitted while scanning in slot order.
	counters := make(map[string]map[int]int)
	lastDayLabel := ""

	for day := models.WeekdayMonday; day <= models.WeekdayFriday; day++ {
		dayDate := WeekdayDate(in.ReferenceYear, in.WeekNumber, day)
		holiday := MatchHoliday(in.Holidays, in.WeekNumber, dayDate)

		for period := 1; period <= models.PeriodsPerDay; period++ {
			row := models.ReportRow{PeriodIndex: period}

			if label := models.DayLabel(day); label != lastDayLabel {
				row.DayLabel = label
				lastDayLabel = label
			}

			key := slotKey{Day: day, Period: period}

			switch {
			case hasOverride(overrides, key):
				log := overrides[key]
				row.SubjectName = log.SubjectName
				row.LessonName = log.LessonName
				row.Notes = log.Notes

			case holiday != nil:
				row.SubjectName = models.HolidaySubjectName
				row.LessonName = holiday.HolidayName
				if holiday.IsMoved && holiday.MovedToDate != nil {
					report.MovedLessons = append(report.MovedLessons, models.MovedLesson{
						HolidayName: holiday.HolidayName,
						DayOfWeek:   day,
						PeriodIndex: period,
						FromDate:    dayDate,
						ToDate:      dateOnly(*holiday.MovedToDate),
					})
				}

			default:
				if subject, ok := slots[key]; ok {
					if counters[subject] == nil {
						counters[subject] = make(map[int]int)
					}
					counters[subject][in.WeekNumber]++

					index := (in.WeekNumber-1)*periodsPerWeek[subject] + counters[subject][in.WeekNumber]
					if min := minLessonIndex[subject]; min > 1 {
						index += min - 1
					}

					row.SubjectName = subject
					row.LessonName = lessons[lessonKey{Subject: subject, Index: index}]
				}
			}

			report.Rows = append(report.Rows, row)
		}
	}

	return report
}

func hasOverride(overrides map[slotKey]models.WeeklyLog, key slotKey) bool {
	_, ok := overrides[key]
	return ok
}
