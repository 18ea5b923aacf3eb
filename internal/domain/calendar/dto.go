package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

type WorkingDaysResponse struct {
	Year             int      `json:"year"`
	Month            int      `json:"month"`
	TotalDays        int      `json:"total_days"`
	TotalWorkingDays int      `json:"total_working_days"`
	Holidays         []string `json:"holidays"`
	SatOff           []string `json:"sat_off"`
}

func NewWorkingDaysResponse(wd WorkingDays) WorkingDaysResponse {
	return WorkingDaysResponse{
		Year:             wd.Year,
		Month:            wd.Month,
		TotalDays:        wd.TotalDays,
		TotalWorkingDays: wd.TotalWorkingDays,
		Holidays:         formatDates(wd.Holidays),
		SatOff:           formatDates(wd.SatOff),
	}
}

type HolidayResponse struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type SaturdayOffResponse struct {
	Key       string   `json:"key"`
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	Dates     []string `json:"dates"`
	UpdatedBy string   `json:"updated_by,omitempty"`
	UpdatedAt *string  `json:"updated_at,omitempty"`
}

func NewSaturdayOffResponse(s SaturdayOff) SaturdayOffResponse {
	resp := SaturdayOffResponse{
		Key:       SaturdayOffKey(s.Year, s.Month),
		Year:      s.Year,
		Month:     s.Month,
		Dates:     formatDates(s.Dates),
		UpdatedBy: s.UpdatedBy,
	}
	if !s.UpdatedAt.IsZero() {
		ts := s.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &ts
	}
	return resp
}

// SaturdayOffRequest replaces the Saturday-off list of a month
type SaturdayOffRequest struct {
	Year  int      `json:"-"`
	Month int      `json:"-"`
	Dates []string `json:"dates"`
}

// Validate parses the dates, requiring Saturdays of the requested month. Duplicates collapse.
func (r *SaturdayOffRequest) Validate() ([]time.Time, error) {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < validator.MinYear || r.Year > validator.MaxYear {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	seen := make(map[string]bool, len(r.Dates))
	dates := make([]time.Time, 0, len(r.Dates))
	for i, s := range r.Dates {
		field := fmt.Sprintf("dates[%d]", i)
		d, ok := validator.IsValidDate(s)
		switch {
		case !ok:
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be a valid date in YYYY-MM-DD format"})
		case d.Year() != r.Year || int(d.Month()) != r.Month:
			errs = append(errs, validator.ValidationError{Field: field, Message: ErrOutsideMonth.Error()})
		case d.Weekday() != time.Saturday:
			errs = append(errs, validator.ValidationError{Field: field, Message: ErrNotSaturday.Error()})
		case !seen[s]:
			seen[s] = true
			dates = append(dates, d)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(time.DateOnly)
	}
	return out
}
