package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

var _ calendar.CalendarService = (*CalendarServiceImpl)(nil)

type CalendarServiceImpl struct {
	settings calendar.SettingsRepository
	cache    calendar.WorkingDaysCache
	holidays calendar.HolidayProvider
	now      func() time.Time
}

func NewCalendarService(settings calendar.SettingsRepository, cache calendar.WorkingDaysCache, holidays calendar.HolidayProvider) *CalendarServiceImpl {
	return &CalendarServiceImpl{
		settings: settings,
		cache:    cache,
		holidays: holidays,
		now:      time.Now,
	}
}

// WithClock replaces the time source.
func (s *CalendarServiceImpl) WithClock(now func() time.Time) *CalendarServiceImpl {
	s.now = now
	return s
}

// ComputeWorkingDays implements calendar.CalendarService. A failed cache write is logged, not returned.
func (s *CalendarServiceImpl) ComputeWorkingDays(ctx context.Context, year, month int) (calendar.WorkingDays, error) {
	wd, err := s.compute(ctx, year, month)
	if err != nil {
		return calendar.WorkingDays{}, err
	}

	if err := s.cache.Upsert(ctx, wd); err != nil {
		slog.Warn("Failed to cache working days", "year", year, "month", month, "error", err)
	}
	return wd, nil
}

// RefreshCache implements calendar.CalendarService.
func (s *CalendarServiceImpl) RefreshCache(ctx context.Context, year, month int) (bool, error) {
	fresh, err := s.compute(ctx, year, month)
	if err != nil {
		return false, err
	}

	cached, err := s.cache.Get(ctx, year, month)
	if err != nil && !errors.Is(err, calendar.ErrCacheMiss) {
		return false, fmt.Errorf("failed to read working days cache: %w", err)
	}
	changed := err != nil || !cached.SameDays(fresh)

	if err := s.cache.Upsert(ctx, fresh); err != nil {
		return false, fmt.Errorf("failed to cache working days: %w", err)
	}
	return changed, nil
}

// compute enumerates the month and drops Sundays, holidays and Saturdays off.
func (s *CalendarServiceImpl) compute(ctx context.Context, year, month int) (calendar.WorkingDays, error) {
	if err := validatePeriod(year, month); err != nil {
		return calendar.WorkingDays{}, err
	}

	satOff, err := s.settings.GetSaturdayOff(ctx, year, month)
	if err != nil {
		return calendar.WorkingDays{}, fmt.Errorf("failed to get saturday off settings: %w", err)
	}

	excluded := make(map[string]bool)
	holidays := make([]time.Time, 0)
	for _, h := range s.holidays.Holidays(year) {
		if int(h.Date.Month()) != month {
			continue
		}
		holidays = append(holidays, h.Date)
		excluded[h.Date.Format(time.DateOnly)] = true
	}
	satDates := make([]time.Time, 0, len(satOff.Dates))
	for _, d := range satOff.Dates {
		if d.Year() != year || int(d.Month()) != month {
			continue
		}
		satDates = append(satDates, d)
		excluded[d.Format(time.DateOnly)] = true
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	totalDays := first.AddDate(0, 1, -1).Day()

	working := 0
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Sunday || excluded[d.Format(time.DateOnly)] {
			continue
		}
		working++
	}

	return calendar.WorkingDays{
		Year:             year,
		Month:            month,
		TotalDays:        totalDays,
		TotalWorkingDays: working,
		Holidays:         holidays,
		SatOff:           satDates,
		ComputedAt:       s.now().UTC(),
	}, nil
}

// ListHolidays implements calendar.CalendarService.
func (s *CalendarServiceImpl) ListHolidays(ctx context.Context, year int) ([]calendar.HolidayResponse, error) {
	if year < validator.MinYear || year > validator.MaxYear {
		return nil, validator.New("year", "year is out of range")
	}

	list := s.holidays.Holidays(year)
	out := make([]calendar.HolidayResponse, 0, len(list))
	for _, h := range list {
		out = append(out, calendar.HolidayResponse{Date: h.Date.Format(time.DateOnly), Name: h.Name})
	}
	return out, nil
}

// GetSaturdayOff implements calendar.CalendarService.
func (s *CalendarServiceImpl) GetSaturdayOff(ctx context.Context, year, month int) (calendar.SaturdayOffResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return calendar.SaturdayOffResponse{}, err
	}

	sat, err := s.settings.GetSaturdayOff(ctx, year, month)
	if err != nil {
		return calendar.SaturdayOffResponse{}, fmt.Errorf("failed to get saturday off settings: %w", err)
	}
	return calendar.NewSaturdayOffResponse(sat), nil
}

// SetSaturdayOff implements calendar.CalendarService. The period's cache is refreshed after the write.
func (s *CalendarServiceImpl) SetSaturdayOff(ctx context.Context, req calendar.SaturdayOffRequest) (calendar.SaturdayOffResponse, error) {
	caller, err := user.FromContext(ctx)
	if err != nil {
		return calendar.SaturdayOffResponse{}, err
	}
	if !caller.Can(user.PermissionCalendarManage) {
		return calendar.SaturdayOffResponse{}, user.ErrInsufficientPermissions
	}

	dates, err := req.Validate()
	if err != nil {
		return calendar.SaturdayOffResponse{}, err
	}

	saved, err := s.settings.SaveSaturdayOff(ctx, calendar.SaturdayOff{
		Year:      req.Year,
		Month:     req.Month,
		Dates:     dates,
		UpdatedBy: caller.ID,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return calendar.SaturdayOffResponse{}, fmt.Errorf("failed to save saturday off settings: %w", err)
	}

	if _, err := s.RefreshCache(ctx, req.Year, req.Month); err != nil {
		slog.Warn("Failed to refresh working days after settings change", "year", req.Year, "month", req.Month, "error", err)
	}

	slog.Info("Saturday off settings updated", "key", calendar.SaturdayOffKey(req.Year, req.Month), "count", len(dates), "updated_by", caller.ID)
	return calendar.NewSaturdayOffResponse(saved), nil
}

func validatePeriod(year, month int) error {
	var errs validator.ValidationErrors
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if year < validator.MinYear || year > validator.MaxYear {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
