package attendance

import (
	"time"
)

// Status is the coarse daily presence flag. Payroll counts Present records.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// OvertimeStatus is empty when a record carries no overtime to review.
type OvertimeStatus string

const (
	OvertimeNone     OvertimeStatus = ""
	OvertimePending  OvertimeStatus = "Pending"
	OvertimeApproved OvertimeStatus = "Approved"
	OvertimeRejected OvertimeStatus = "Rejected"
)

type Location struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64
}

// Record is one check-in/check-out session. CheckOutTime is nil while the session is open.
type Record struct {
	ID                     string
	UserID                 string
	Date                   time.Time
	CheckInTime            time.Time
	CheckOutTime           *time.Time
	CheckInLocation        Location
	CheckOutLocation       *Location
	WithinGeofence         bool
	CheckOutWithinGeofence *bool
	Reason                 *string
	Status                 Status
	PotentialOvertimeHours float64
	OvertimeStatus         OvertimeStatus
	ApprovedOvertimeHours  float64
	ReviewedBy             *string
	ReviewedAt             *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsOpen reports whether the record still waits for a check-out.
func (r *Record) IsOpen() bool {
	return r.CheckOutTime == nil
}

// Override replaces the computed day credit of one user on one date.
type Override struct {
	UserID    string
	Date      time.Time
	DayCredit float64
	Reason    string
	UpdatedBy string
	UpdatedAt time.Time
}

// Key returns the override identity, userId_date.
func (o Override) Key() string {
	return OverrideKey(o.UserID, o.Date)
}

func OverrideKey(userID string, date time.Time) string {
	return userID + "_" + date.Format(time.DateOnly)
}

// ValidDayCredit reports whether c is one of 0, 0.5, 1.
func ValidDayCredit(c float64) bool {
	return c == 0 || c == 0.5 || c == 1
}

// DayStatus is the hours-based classification of a day.
type DayStatus string

const (
	DayFull      DayStatus = "Full"
	DayUnderwork DayStatus = "Underwork"
	DayHalf      DayStatus = "Half"
	DayAbsent    DayStatus = "Absent"
)

// DailyComputation is derived from a check-in/check-out pair and never stored.
type DailyComputation struct {
	Date          time.Time
	CheckIn       *time.Time
	CheckOut      *time.Time
	TotalHours    float64
	Status        DayStatus
	DayCredit     float64
	Underwork     bool
	OvertimeHours float64
	LateIn        bool
	EarlyOut      bool
	Overridden    bool
}

// MonthlySummary folds a month of daily computations.
type MonthlySummary struct {
	PresentCredit   float64
	HalfDays        int
	FullDays        int
	ZeroDays        int
	UnderworkAlerts int
	OvertimeHours   float64
}
