package calendar

import "errors"

var (
	ErrCacheMiss       = errors.New("working days not cached for period")
	ErrNotSaturday     = errors.New("date is not a saturday")
	ErrOutsideMonth    = errors.New("date is outside the requested month")
	ErrHolidayCalendar = errors.New("invalid holiday calendar")
)
