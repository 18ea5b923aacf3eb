package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/calendar"
)

const WorkingDaysRefreshJobName = "working_days_refresh"

// WorkingDaysRefresh recomputes the working-day cache for the current and next month.
func WorkingDaysRefresh(svc calendar.CalendarService, loc *time.Location, now func() time.Time) JobFunc {
	return func(ctx context.Context) error {
		today := now().In(loc)
		current := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		next := current.AddDate(0, 1, 0)

		var errs []error
		for _, period := range []time.Time{current, next} {
			year, month := period.Year(), int(period.Month())
			changed, err := svc.RefreshCache(ctx, year, month)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if changed {
				slog.Info("Working days cache updated", "year", year, "month", month)
			}
		}
		return errors.Join(errs...)
	}
}
