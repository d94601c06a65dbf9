package service

import (
	"time"

	"github.com/HThanh-how/LBG/internal/models"
)

// MatchHoliday decides whether the given weekday date of a week is a
// holiday. Rules are evaluated in input order and the first survivor
// wins; rules are not required to be mutually exclusive, so the
// caller-supplied ordering is part of the contract.
//
// A rule matches when:
//   - it carries no week scope, or its week scope equals weekNumber;
//   - its date range contains the date, or its single date equals the
//     date exactly;
//   - its odd/even day-of-month filter, when set, agrees with the date.
//
// Malformed rules (range with start after end, or no date fields at
// all) never match. Returns nil when no rule applies.
func MatchHoliday(rules []models.Holiday, weekNumber int, date time.Time) *models.Holiday {
	day := dateOnly(date)

	for i := range rules {
		rule := &rules[i]

		if rule.WeekNumber != nil && *rule.WeekNumber != weekNumber {
			continue
		}

		switch {
		case rule.StartDate != nil && rule.EndDate != nil:
			if day.Before(dateOnly(*rule.StartDate)) || day.After(dateOnly(*rule.EndDate)) {
				continue
			}
		case rule.HolidayDate != nil:
			if !day.Equal(dateOnly(*rule.HolidayDate)) {
				continue
			}
		default:
			continue
		}

		if rule.IsOddDay && day.Day()%2 == 0 {
			continue
		}
		if rule.IsEvenDay && day.Day()%2 == 1 {
			continue
		}

		return rule
	}

	return nil
}

// dateOnly strips the time-of-day and zone so calendar dates compare
// regardless of how they were loaded.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
