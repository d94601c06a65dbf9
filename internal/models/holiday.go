package models

import "time"

// Holiday is a calendar exclusion rule. One record covers four shapes:
// a single date (HolidayDate), a date range (StartDate..EndDate), an
// optional week scope (WeekNumber restricts the rule to one week) and
// an optional odd/even day-of-month parity filter. A moved holiday
// additionally carries the date the lesson was rescheduled to.
type Holiday struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"user_id"`
	HolidayName string     `db:"holiday_name" json:"holiday_name"`
	HolidayDate *time.Time `db:"holiday_date" json:"holiday_date,omitempty"`
	StartDate   *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate     *time.Time `db:"end_date" json:"end_date,omitempty"`
	WeekNumber  *int       `db:"week_number" json:"week_number,omitempty"`
	IsOddDay    bool       `db:"is_odd_day" json:"is_odd_day"`
	IsEvenDay   bool       `db:"is_even_day" json:"is_even_day"`
	IsMoved     bool       `db:"is_moved" json:"is_moved"`
	MovedToDate *time.Time `db:"moved_to_date" json:"moved_to_date,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
