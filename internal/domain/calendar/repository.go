package calendar

import "context"

// SettingsRepository stores admin-managed calendar settings.
type SettingsRepository interface {
	// GetSaturdayOff returns an empty list when no settings document exists.
	GetSaturdayOff(ctx context.Context, year, month int) (SaturdayOff, error)
	SaveSaturdayOff(ctx context.Context, s SaturdayOff) (SaturdayOff, error)
}

// WorkingDaysCache persists computations keyed by period. Readers must not prefer it over a fresh computation.
type WorkingDaysCache interface {
	Upsert(ctx context.Context, wd WorkingDays) error
	// Get returns ErrCacheMiss when nothing is stored for the period.
	Get(ctx context.Context, year, month int) (WorkingDays, error)
}

// HolidayProvider supplies the fixed holiday calendar.
type HolidayProvider interface {
	Holidays(year int) []Holiday
}
