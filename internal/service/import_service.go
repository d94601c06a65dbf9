package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"go.uber.org/zap"

	"github.com/HThanh-how/LBG/internal/models"
	appErrors "github.com/HThanh-how/LBG/pkg/errors"
)

type timetableReplacer interface {
	Replace(ctx context.Context, userID string, slots []models.TimetableSlot) ([]models.TimetableSlot, error)
}

type curriculumReplacer interface {
	Replace(ctx context.Context, userID string, entries []models.CurriculumEntry) ([]models.CurriculumEntry, error)
}

// ImportService parses uploaded .xls workbooks and replaces the
// matching dataset. Timetable sheets carry day/period/subject columns,
// teaching-program sheets carry subject/index/lesson columns. The
// first row is treated as a header when its second column is not
// numeric.
type ImportService struct {
	timetables timetableReplacer
	curriculum curriculumReplacer
	logger     *zap.Logger
}

// NewImportService constructs an ImportService.
func NewImportService(timetables timetableReplacer, curriculum curriculumReplacer, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{timetables: timetables, curriculum: curriculum, logger: logger}
}

// ImportTimetable parses a timetable workbook and replaces the user's
// timetable with its rows.
func (s *ImportService) ImportTimetable(ctx context.Context, userID, filename string, file io.ReadSeeker) ([]models.TimetableSlot, error) {
	sheet, err := openFirstSheet(filename, file)
	if err != nil {
		return nil, err
	}

	slots := make([]models.TimetableSlot, 0, int(sheet.MaxRow))
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}

		day := strings.TrimSpace(row.Col(0))
		period := strings.TrimSpace(row.Col(1))
		subject := strings.TrimSpace(row.Col(2))
		if day == "" && period == "" && subject == "" {
			continue
		}
		if i == 0 && !isNumeric(period) {
			continue
		}

		dayOfWeek, err := parseWeekday(day)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: %v", i+1, err))
		}
		periodIndex, err := parseCellInt(period)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: invalid period %q", i+1, period))
		}

		slots = append(slots, models.TimetableSlot{
			UserID:      userID,
			DayOfWeek:   dayOfWeek,
			PeriodIndex: periodIndex,
			SubjectName: subject,
		})
	}

	s.logger.Info("timetable import parsed", zap.String("user_id", userID), zap.Int("rows", len(slots)))
	return s.timetables.Replace(ctx, userID, slots)
}

// ImportCurriculum parses a teaching-program workbook and replaces the
// user's teaching program with its rows.
func (s *ImportService) ImportCurriculum(ctx context.Context, userID, filename string, file io.ReadSeeker) ([]models.CurriculumEntry, error) {
	sheet, err := openFirstSheet(filename, file)
	if err != nil {
		return nil, err
	}

	entries := make([]models.CurriculumEntry, 0, int(sheet.MaxRow))
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}

		subject := strings.TrimSpace(row.Col(0))
		index := strings.TrimSpace(row.Col(1))
		lesson := strings.TrimSpace(row.Col(2))
		if subject == "" && index == "" && lesson == "" {
			continue
		}
		if i == 0 && !isNumeric(index) {
			continue
		}

		lessonIndex, err := parseCellInt(index)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: invalid lesson_index %q", i+1, index))
		}

		entries = append(entries, models.CurriculumEntry{
			UserID:      userID,
			SubjectName: subject,
			LessonIndex: lessonIndex,
			LessonName:  lesson,
		})
	}

	s.logger.Info("teaching program import parsed", zap.String("user_id", userID), zap.Int("rows", len(entries)))
	return s.curriculum.Replace(ctx, userID, entries)
}

func openFirstSheet(filename string, file io.ReadSeeker) (*xls.WorkSheet, error) {
	if strings.ToLower(filepath.Ext(filename)) != ".xls" {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, "only .xls files are supported")
	}

	book, err := xls.OpenReader(file, "utf-8")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read workbook")
	}

	sheet := book.GetSheet(0)
	if sheet == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "workbook has no sheets")
	}
	return sheet, nil
}

// parseWeekday accepts both the numeric encoding ("2".."6") and the
// display labels ("Thứ 2".."Thứ 6").
func parseWeekday(value string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(value, "Thứ"))
	day, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid day_of_week %q", value)
	}
	if day < models.WeekdayMonday || day > models.WeekdayFriday {
		return 0, fmt.Errorf("day_of_week %d out of range", day)
	}
	return day, nil
}

// parseCellInt handles the "5.0" shape xls numeric cells render as.
func parseCellInt(value string) (int, error) {
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func isNumeric(value string) bool {
	_, err := parseCellInt(value)
	return err == nil
}
