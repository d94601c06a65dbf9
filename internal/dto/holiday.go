package dto

// HolidayCreateRequest adds one holiday rule. Dates use "2006-01-02".
// Either holiday_date or the start_date/end_date pair must be set.
type HolidayCreateRequest struct {
	HolidayName string `json:"holiday_name" validate:"required"`
	HolidayDate string `json:"holiday_date"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	WeekNumber  *int   `json:"week_number" validate:"omitempty,min=1,max=40"`
	IsOddDay    bool   `json:"is_odd_day"`
	IsEvenDay   bool   `json:"is_even_day"`
	IsMoved     bool   `json:"is_moved"`
	MovedToDate string `json:"moved_to_date"`
}

// DefaultHolidaysRequest seeds the national holidays of one year.
type DefaultHolidaysRequest struct {
	Year int `json:"year" validate:"required,min=2000,max=2100"`
}
