package attendance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
)

const (
	FullHours      = 9.0
	UnderworkHours = 7.0
	HalfHours      = 4.0

	// Hour-of-day limits in the office time zone
	LateInHour   = 11
	EarlyOutHour = 17
)

// Classifier turns a check-in/check-out pair into a DailyComputation.
type Classifier struct {
	loc *time.Location
}

func NewClassifier(loc *time.Location) *Classifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Classifier{loc: loc}
}

// Classify applies the hour thresholds first and the late-in/early-out flags only below seven hours.
func (c *Classifier) Classify(checkIn, checkOut *time.Time) attendance.DailyComputation {
	in, out := validTime(checkIn), validTime(checkOut)

	day := attendance.DailyComputation{CheckIn: in, CheckOut: out}
	switch {
	case in != nil:
		day.Date = c.DateOf(*in)
	case out != nil:
		day.Date = c.DateOf(*out)
	}

	var hours float64
	if in != nil && out != nil {
		hours = math.Max(0, out.Sub(*in).Hours())
	}
	if in != nil {
		day.LateIn = in.In(c.loc).Hour() >= LateInHour
	}
	if out != nil {
		day.EarlyOut = out.In(c.loc).Hour() < EarlyOutHour
	}

	return applyThresholds(day, hours)
}

// applyThresholds sets status, credit and overtime. First match wins.
func applyThresholds(day attendance.DailyComputation, hours float64) attendance.DailyComputation {
	day.TotalHours = round2(hours)
	switch {
	case hours >= FullHours:
		day.Status = attendance.DayFull
		day.DayCredit = 1
		day.OvertimeHours = round2(hours - FullHours)
	case hours >= UnderworkHours:
		day.Status = attendance.DayUnderwork
		day.DayCredit = 1
		day.Underwork = true
	case hours >= HalfHours || day.LateIn || day.EarlyOut:
		day.Status = attendance.DayHalf
		day.DayCredit = 0.5
	default:
		day.Status = attendance.DayAbsent
		day.DayCredit = 0
	}
	return day
}

// ClassifyRecords classifies one day's sessions. Worked hours are the sum of the closed
// sessions, so breaks between them do not count. Late-in comes from the earliest check-in
// and early-out from the latest check-out.
func (c *Classifier) ClassifyRecords(date time.Time, records []attendance.Record) attendance.DailyComputation {
	day := attendance.DailyComputation{Date: date}

	var hours float64
	for i := range records {
		in, out := validTime(&records[i].CheckInTime), validTime(records[i].CheckOutTime)
		if in != nil && (day.CheckIn == nil || in.Before(*day.CheckIn)) {
			day.CheckIn = in
		}
		if out != nil && (day.CheckOut == nil || out.After(*day.CheckOut)) {
			day.CheckOut = out
		}
		if in != nil && out != nil {
			hours += math.Max(0, out.Sub(*in).Hours())
		}
	}
	if day.CheckIn != nil {
		day.LateIn = day.CheckIn.In(c.loc).Hour() >= LateInHour
	}
	if day.CheckOut != nil {
		day.EarlyOut = day.CheckOut.In(c.loc).Hour() < EarlyOutHour
	}

	return applyThresholds(day, hours)
}

// DateOf returns the office-local calendar date of t as a UTC midnight.
func (c *Classifier) DateOf(t time.Time) time.Time {
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func validTime(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := *t
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
