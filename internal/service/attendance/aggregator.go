package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
)

// Aggregate folds daily computations into a monthly summary.
// Buckets follow dayCredit, so overrides must already be merged.
func Aggregate(days []attendance.DailyComputation) attendance.MonthlySummary {
	var s attendance.MonthlySummary
	for _, d := range days {
		s.PresentCredit += d.DayCredit
		switch d.DayCredit {
		case 1:
			s.FullDays++
		case 0.5:
			s.HalfDays++
		default:
			s.ZeroDays++
		}
		if d.Underwork {
			s.UnderworkAlerts++
		}
		s.OvertimeHours += d.OvertimeHours
	}
	s.PresentCredit = round2(s.PresentCredit)
	s.OvertimeHours = round2(s.OvertimeHours)
	return s
}

// MergeOverrides replaces dayCredit on overridden dates. A credit below a full day also
// drops the underwork alert and overtime, since both only apply to fully credited days.
// Overrides for dates without attendance add an Absent day carrying the override credit.
// The result is in date order.
func MergeOverrides(days []attendance.DailyComputation, overrides []attendance.Override) []attendance.DailyComputation {
	byDate := make(map[string]attendance.Override, len(overrides))
	for _, o := range overrides {
		byDate[o.Date.Format(time.DateOnly)] = o
	}

	merged := make([]attendance.DailyComputation, 0, len(days)+len(overrides))
	for _, d := range days {
		key := d.Date.Format(time.DateOnly)
		if o, ok := byDate[key]; ok {
			d.DayCredit = o.DayCredit
			d.Overridden = true
			if o.DayCredit < 1 {
				d.Underwork = false
				d.OvertimeHours = 0
			}
			delete(byDate, key)
		}
		merged = append(merged, d)
	}
	for _, o := range byDate {
		merged = append(merged, attendance.DailyComputation{
			Date:       o.Date,
			Status:     attendance.DayAbsent,
			DayCredit:  o.DayCredit,
			Overridden: true,
		})
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Date.Before(merged[j].Date) })
	return merged
}
