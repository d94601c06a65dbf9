package service

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HThanh-how/LBG/internal/models"
)

// September 1 2025 is a Monday, so week N starts exactly N-1 weeks
// after it.
const testYear = 2025

func slot(day, period int, subject string) models.TimetableSlot {
	return models.TimetableSlot{DayOfWeek: day, PeriodIndex: period, SubjectName: subject}
}

func entry(subject string, index int, lesson string) models.CurriculumEntry {
	return models.CurriculumEntry{SubjectName: subject, LessonIndex: index, LessonName: lesson}
}

func TestResolveWeekAlwaysEmitsFullGrid(t *testing.T) {
	report := ResolveWeek(ResolveInput{WeekNumber: 1, ReferenceYear: testYear})

	require.Len(t, report.Rows, 25)
	assert.Equal(t, 1, report.WeekNumber)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), report.StartDate)
	assert.Equal(t, time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC), report.EndDate)

	for _, row := range report.Rows {
		assert.Empty(t, row.SubjectName)
		assert.Empty(t, row.LessonName)
	}
}

func TestResolveWeekDayLabelsSpanDays(t *testing.T) {
	report := ResolveWeek(ResolveInput{WeekNumber: 3, ReferenceYear: testYear})

	labels := []string{}
	for i, row := range report.Rows {
		if i%5 == 0 {
			require.NotEmpty(t, row.DayLabel, "row %d should open a day", i)
			labels = append(labels, row.DayLabel)
		} else {
			assert.Empty(t, row.DayLabel, "row %d should not repeat the label", i)
		}
		assert.Equal(t, i%5+1, row.PeriodIndex)
	}
	assert.Equal(t, []string{"Thứ 2", "Thứ 3", "Thứ 4", "Thứ 5", "Thứ 6"}, labels)
}

func TestResolveWeekTimetableLessonLookup(t *testing.T) {
	in := ResolveInput{
		Timetable: []models.TimetableSlot{
			slot(2, 1, "TOÁN"),
			slot(3, 1, "TOÁN"),
		},
		Curriculum: []models.CurriculumEntry{
			entry("TOÁN", 1, "Bài 1"),
			entry("TOÁN", 2, "Bài 2"),
			entry("TOÁN", 3, "Bài 3"),
			entry("TOÁN", 4, "Bài 4"),
		},
		WeekNumber:    2,
		ReferenceYear: testYear,
	}

	report := ResolveWeek(in)

	// Two periods per week: week 2 consumes lessons 3 and 4.
	assert.Equal(t, "TOÁN", report.Rows[0].SubjectName)
	assert.Equal(t, "Bài 3", report.Rows[0].LessonName)
	assert.Equal(t, "Bài 4", report.Rows[5].LessonName)
}

func TestResolveWeekLessonIndexGrowsAcrossWeeks(t *testing.T) {
	timetable := []models.TimetableSlot{slot(2, 1, "SỬ")}
	curriculum := make([]models.CurriculumEntry, 0, 40)
	for i := 1; i <= 40; i++ {
		curriculum = append(curriculum, entry("SỬ", i, "Bài "+strconv.Itoa(i)))
	}

	for week := 1; week <= 5; week++ {
		report := ResolveWeek(ResolveInput{
			Timetable:     timetable,
			Curriculum:    curriculum,
			WeekNumber:    week,
			ReferenceYear: testYear,
		})
		assert.Equal(t, "Bài "+strconv.Itoa(week), report.Rows[0].LessonName)
	}
}

func TestResolveWeekRespectsProgramStartIndex(t *testing.T) {
	in := ResolveInput{
		Timetable: []models.TimetableSlot{slot(2, 1, "ĐỊA")},
		Curriculum: []models.CurriculumEntry{
			entry("ĐỊA", 5, "Bài 5"),
			entry("ĐỊA", 6, "Bài 6"),
		},
		WeekNumber:    1,
		ReferenceYear: testYear,
	}

	report := ResolveWeek(in)
	assert.Equal(t, "Bài 5", report.Rows[0].LessonName)

	in.WeekNumber = 2
	report = ResolveWeek(in)
	assert.Equal(t, "Bài 6", report.Rows[0].LessonName)
}

func TestResolveWeekMissingLessonResolvesEmpty(t *testing.T) {
	in := ResolveInput{
		Timetable:     []models.TimetableSlot{slot(2, 1, "TOÁN")},
		WeekNumber:    1,
		ReferenceYear: testYear,
	}

	report := ResolveWeek(in)
	assert.Equal(t, "TOÁN", report.Rows[0].SubjectName)
	assert.Empty(t, report.Rows[0].LessonName)
}

func TestResolveWeekOverrideWinsOverTimetable(t *testing.T) {
	in := ResolveInput{
		Timetable:  []models.TimetableSlot{slot(2, 1, "TOÁN")},
		Curriculum: []models.CurriculumEntry{entry("TOÁN", 1, "Bài 1")},
		Overrides: []models.WeeklyLog{{
			DayOfWeek:   2,
			PeriodIndex: 1,
			SubjectName: "ÔN TẬP",
			LessonName:  "Ôn tập giữa kỳ",
			Notes:       "thi thử",
		}},
		WeekNumber:    1,
		ReferenceYear: testYear,
	}

	report := ResolveWeek(in)
	assert.Equal(t, "ÔN TẬP", report.Rows[0].SubjectName)
	assert.Equal(t, "Ôn tập giữa kỳ", report.Rows[0].LessonName)
	assert.Equal(t, "thi thử", report.Rows[0].Notes)
}

func TestResolveWeekOverrideWinsOverHoliday(t *testing.T) {
	monday := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	in := ResolveInput{
		Holidays: []models.Holiday{{HolidayName: "Khai giảng", HolidayDate: &monday}},
		Overrides: []models.WeeklyLog{{
			DayOfWeek:   2,
			PeriodIndex: 1,
			SubjectName: "CHÀO CỜ",
		}},
		WeekNumber:    1,
		ReferenceYear: testYear,
	}

	report := ResolveWeek(in)
	assert.Equal(t, "CHÀO CỜ", report.Rows[0].SubjectName)
	// Remaining Monday periods still resolve as holiday.
	assert.Equal(t, models.HolidaySubjectName, report.Rows[1].SubjectName)
	assert.Equal(t, "Khai giảng", report.Rows[1].LessonName)
}

func TestResolveWeekHolidayFillsWholeDay(t *testing.T) {
	tuesday := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)
	in := ResolveInput{
		Timetable:     []models.TimetableSlot{slot(3, 1, "TOÁN")},
		Holidays:      []models.Holiday{{HolidayName: "Quốc khánh", HolidayDate: &tuesday}},
		WeekNumber:    1,
		ReferenceYear: testYear,
	}

	report := ResolveWeek(in)
	for i := 5; i < 10; i++ {
		assert.Equal(t, models.HolidaySubjectName, report.Rows[i].SubjectName)
		assert.Equal(t, "Quốc khánh", report.Rows[i].LessonName)
	}
	// Other days stay untouched.
	assert.Empty(t, report.Rows[0].SubjectName)
	assert.Empty(t, report.Rows[10].SubjectName)
}

func TestResolveWeekHolidayDoesNotConsumeLessons(t *testing.T) {
	monday := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	curriculum := []models.CurriculumEntry{
		entry("TOÁN", 1, "Bài 1"),
		entry("TOÁN", 2, "Bài 2"),
	}
	timetable := []models.TimetableSlot{slot(2, 1, "TOÁN"), slot(3, 1, "TOÁN")}

	report := ResolveWeek(ResolveInput{
		Timetable:     timetable,
		Curriculum:    curriculum,
		Holidays:      []models.Holiday{{HolidayName: "Khai giảng", HolidayDate: &monday}},
		WeekNumber:    1,
		ReferenceYear: testYear,
	})

	// Monday is a holiday; Tuesday still reads as the first occurrence
	// of the week within this resolution pass.
	assert.Equal(t, models.HolidaySubjectName, report.Rows[0].SubjectName)
	assert.Equal(t, "Bài 1", report.Rows[5].LessonName)
}

func TestResolveWeekDuplicateSlotKeepsFirst(t *testing.T) {
	in := ResolveInput{
		Timetable: []models.TimetableSlot{
			slot(2, 1, "TOÁN"),
			slot(2, 1, "VĂN"),
		},
		WeekNumber:    1,
		ReferenceYear: testYear,
	}

	report := ResolveWeek(in)
	assert.Equal(t, "TOÁN", report.Rows[0].SubjectName)
}

func TestResolveWeekMovedHolidayReportsSideChannel(t *testing.T) {
	monday := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	moved := time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC)
	in := ResolveInput{
		Holidays: []models.Holiday{{
			HolidayName: "Nghỉ bù",
			HolidayDate: &monday,
			IsMoved:     true,
			MovedToDate: &moved,
		}},
		WeekNumber:    1,
		ReferenceYear: testYear,
	}

	report := ResolveWeek(in)

	require.NotEmpty(t, report.MovedLessons)
	for _, m := range report.MovedLessons {
		assert.Equal(t, "Nghỉ bù", m.HolidayName)
		assert.Equal(t, 2, m.DayOfWeek)
		assert.Equal(t, monday, m.FromDate)
		assert.Equal(t, moved, m.ToDate)
	}
	// Rows themselves read as a plain holiday.
	assert.Equal(t, models.HolidaySubjectName, report.Rows[0].SubjectName)
}
