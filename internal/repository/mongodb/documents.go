package mongodb

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/calendar"
)

const (
	settingsCollection    = "settings"
	workingDaysCollection = "working_days"
)

type saturdayOffDocument struct {
	Key       string    `bson:"_id"`
	Year      int       `bson:"year"`
	Month     int       `bson:"month"`
	Dates     []string  `bson:"dates"` // list of YYYY-MM-DD
	UpdatedBy string    `bson:"updated_by"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type workingDaysDocument struct {
	Key              string    `bson:"_id"`
	Year             int       `bson:"year"`
	Month            int       `bson:"month"`
	TotalDays        int       `bson:"total_days"`
	TotalWorkingDays int       `bson:"total_working_days"`
	Holidays         []string  `bson:"holidays"`
	SatOff           []string  `bson:"sat_off"`
	ComputedAt       time.Time `bson:"computed_at"`
}

func newSaturdayOffDocument(s calendar.SaturdayOff) saturdayOffDocument {
	return saturdayOffDocument{
		Key:       calendar.SaturdayOffKey(s.Year, s.Month),
		Year:      s.Year,
		Month:     s.Month,
		Dates:     formatDates(s.Dates),
		UpdatedBy: s.UpdatedBy,
		UpdatedAt: s.UpdatedAt.UTC(),
	}
}

func (d saturdayOffDocument) toEntity() (calendar.SaturdayOff, error) {
	dates, err := parseDates(d.Dates)
	if err != nil {
		return calendar.SaturdayOff{}, err
	}
	return calendar.SaturdayOff{
		Year:      d.Year,
		Month:     d.Month,
		Dates:     dates,
		UpdatedBy: d.UpdatedBy,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func newWorkingDaysDocument(wd calendar.WorkingDays) workingDaysDocument {
	return workingDaysDocument{
		Key:              calendar.CacheKey(wd.Year, wd.Month),
		Year:             wd.Year,
		Month:            wd.Month,
		TotalDays:        wd.TotalDays,
		TotalWorkingDays: wd.TotalWorkingDays,
		Holidays:         formatDates(wd.Holidays),
		SatOff:           formatDates(wd.SatOff),
		ComputedAt:       wd.ComputedAt.UTC(),
	}
}

func (d workingDaysDocument) toEntity() (calendar.WorkingDays, error) {
	holidays, err := parseDates(d.Holidays)
	if err != nil {
		return calendar.WorkingDays{}, err
	}
	satOff, err := parseDates(d.SatOff)
	if err != nil {
		return calendar.WorkingDays{}, err
	}
	return calendar.WorkingDays{
		Year:             d.Year,
		Month:            d.Month,
		TotalDays:        d.TotalDays,
		TotalWorkingDays: d.TotalWorkingDays,
		Holidays:         holidays,
		SatOff:           satOff,
		ComputedAt:       d.ComputedAt,
	}, nil
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(time.DateOnly))
	}
	return out
}

func parseDates(values []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
