package calendar

import "context"

type CalendarService interface {
	// ComputeWorkingDays excludes Sundays, holidays and Saturdays off, then upserts the cache.
	ComputeWorkingDays(ctx context.Context, year, month int) (WorkingDays, error)

	// RefreshCache recomputes a period and reports whether the cached copy had drifted.
	RefreshCache(ctx context.Context, year, month int) (changed bool, err error)

	ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
	GetSaturdayOff(ctx context.Context, year, month int) (SaturdayOffResponse, error)
	SetSaturdayOff(ctx context.Context, req SaturdayOffRequest) (SaturdayOffResponse, error)
}
