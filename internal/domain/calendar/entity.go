package calendar

import (
	"fmt"
	"time"
)

// Holiday is a fixed entry of the holiday calendar.
type Holiday struct {
	Date time.Time
	Name string
}

// SaturdayOff is the admin-managed list of Saturdays off for one month.
type SaturdayOff struct {
	Year      int
	Month     int
	Dates     []time.Time
	UpdatedBy string
	UpdatedAt time.Time
}

// SaturdayOffKey is the settings key of a month's Saturday-off list.
func SaturdayOffKey(year, month int) string {
	return fmt.Sprintf("saturday_off_%d_%d", year, month)
}

// WorkingDays is the result of a working-day computation. The cached copy is advisory.
type WorkingDays struct {
	Year             int
	Month            int
	TotalDays        int
	TotalWorkingDays int
	Holidays         []time.Time
	SatOff           []time.Time
	ComputedAt       time.Time
}

// CacheKey is the working-day cache key, year_month.
func CacheKey(year, month int) string {
	return fmt.Sprintf("%d_%d", year, month)
}

// SameDays reports whether two computations agree on every derived field.
func (w WorkingDays) SameDays(other WorkingDays) bool {
	if w.Year != other.Year || w.Month != other.Month ||
		w.TotalDays != other.TotalDays || w.TotalWorkingDays != other.TotalWorkingDays {
		return false
	}
	return sameDates(w.Holidays, other.Holidays) && sameDates(w.SatOff, other.SatOff)
}

func sameDates(a, b []time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
