package attendance

import (
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

const maxReasonLength = 500

// CheckInRequest carries the device position at check-in
type CheckInRequest struct {
	Latitude  float64  `json:"latitude" validate:"latitude"`
	Longitude float64  `json:"longitude" validate:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty" validate:"omitempty,gte=0"`
	Reason    *string  `json:"reason,omitempty" validate:"omitempty,max=500"`
}

func (r *CheckInRequest) Validate() error {
	return validatePosition(r.Latitude, r.Longitude, r)
}

// CheckOutRequest carries the device position at check-out
type CheckOutRequest struct {
	Latitude  float64  `json:"latitude" validate:"latitude"`
	Longitude float64  `json:"longitude" validate:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty" validate:"omitempty,gte=0"`
	Reason    *string  `json:"reason,omitempty" validate:"omitempty,max=500"`
}

func (r *CheckOutRequest) Validate() error {
	return validatePosition(r.Latitude, r.Longitude, r)
}

func validatePosition(lat, lon float64, req interface{}) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return validator.New("location", "coordinates must be finite numbers")
	}
	return validator.Struct(req)
}

// DailyLogRequest identifies one user's day
type DailyLogRequest struct {
	UserID string
	Date   string
}

func (r *DailyLogRequest) Validate() (time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be a valid date in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return date, nil
}

// MonthlySummaryRequest identifies one user's month
type MonthlySummaryRequest struct {
	UserID string
	Month  int
	Year   int
}

func (r *MonthlySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < validator.MinYear || r.Year > validator.MaxYear {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OverrideRequest sets the day credit for a user and date
type OverrideRequest struct {
	UserID    string   `json:"-"`
	Date      string   `json:"-"`
	DayCredit *float64 `json:"day_credit"`
	Reason    string   `json:"reason"`
}

func (r *OverrideRequest) Validate() (time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be a valid date in YYYY-MM-DD format"})
	}

	if r.DayCredit == nil {
		errs = append(errs, validator.ValidationError{Field: "day_credit", Message: "day_credit is required"})
	} else if !ValidDayCredit(*r.DayCredit) {
		errs = append(errs, validator.ValidationError{Field: "day_credit", Message: ErrInvalidDayCredit.Error()})
	}

	if len(strings.TrimSpace(r.Reason)) > maxReasonLength {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is too long"})
	}

	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return date, nil
}

type LocationResponse struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// RecordResponse represents an attendance record in API responses
type RecordResponse struct {
	ID                     string            `json:"id"`
	UserID                 string            `json:"user_id"`
	Date                   string            `json:"date"`
	CheckInTime            string            `json:"check_in_time"`
	CheckOutTime           *string           `json:"check_out_time"`
	CheckInLocation        LocationResponse  `json:"check_in_location"`
	CheckOutLocation       *LocationResponse `json:"check_out_location,omitempty"`
	WithinGeofence         bool              `json:"within_geofence"`
	CheckOutWithinGeofence *bool             `json:"check_out_within_geofence,omitempty"`
	DistanceMeters         *int64            `json:"distance_meters,omitempty"`
	Reason                 *string           `json:"reason,omitempty"`
	Status                 string            `json:"status"`
	PotentialOvertimeHours float64           `json:"potential_overtime_hours"`
	OvertimeStatus         *string           `json:"overtime_status"`
	ApprovedOvertimeHours  float64           `json:"approved_overtime_hours"`
	ReviewedBy             *string           `json:"reviewed_by,omitempty"`
	ReviewedAt             *string           `json:"reviewed_at,omitempty"`
}

func NewRecordResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Date:        r.Date.Format(time.DateOnly),
		CheckInTime: r.CheckInTime.Format(time.RFC3339),
		CheckInLocation: LocationResponse{
			Latitude:  r.CheckInLocation.Latitude,
			Longitude: r.CheckInLocation.Longitude,
			Accuracy:  r.CheckInLocation.Accuracy,
		},
		WithinGeofence:         r.WithinGeofence,
		CheckOutWithinGeofence: r.CheckOutWithinGeofence,
		Reason:                 r.Reason,
		Status:                 string(r.Status),
		PotentialOvertimeHours: r.PotentialOvertimeHours,
		ApprovedOvertimeHours:  r.ApprovedOvertimeHours,
		ReviewedBy:             r.ReviewedBy,
	}
	if r.CheckOutTime != nil {
		s := r.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &s
	}
	if r.CheckOutLocation != nil {
		resp.CheckOutLocation = &LocationResponse{
			Latitude:  r.CheckOutLocation.Latitude,
			Longitude: r.CheckOutLocation.Longitude,
			Accuracy:  r.CheckOutLocation.Accuracy,
		}
	}
	if r.OvertimeStatus != OvertimeNone {
		s := string(r.OvertimeStatus)
		resp.OvertimeStatus = &s
	}
	if r.ReviewedAt != nil {
		s := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &s
	}
	return resp
}

// DailyComputationResponse is the classified view of one day
type DailyComputationResponse struct {
	Date          string  `json:"date"`
	CheckIn       *string `json:"check_in"`
	CheckOut      *string `json:"check_out"`
	TotalHours    float64 `json:"total_hours"`
	Status        string  `json:"status"`
	DayCredit     float64 `json:"day_credit"`
	Underwork     bool    `json:"underwork"`
	OvertimeHours float64 `json:"overtime_hours"`
	LateIn        bool    `json:"late_in"`
	EarlyOut      bool    `json:"early_out"`
	Overridden    bool    `json:"overridden"`
}

func NewDailyComputationResponse(d DailyComputation) DailyComputationResponse {
	resp := DailyComputationResponse{
		Date:          d.Date.Format(time.DateOnly),
		TotalHours:    d.TotalHours,
		Status:        string(d.Status),
		DayCredit:     d.DayCredit,
		Underwork:     d.Underwork,
		OvertimeHours: d.OvertimeHours,
		LateIn:        d.LateIn,
		EarlyOut:      d.EarlyOut,
		Overridden:    d.Overridden,
	}
	if d.CheckIn != nil {
		s := d.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &s
	}
	if d.CheckOut != nil {
		s := d.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &s
	}
	return resp
}

// DailyLogResponse is returned by GET /attendance/logs/{userId}/{date}
type DailyLogResponse struct {
	UserID      string                   `json:"user_id"`
	Computation DailyComputationResponse `json:"computation"`
	Records     []RecordResponse         `json:"records"`
	Override    *OverrideResponse        `json:"override,omitempty"`
}

// MonthlySummaryResponse is returned by GET /attendance/summary/{userId}/{month}/{year}
type MonthlySummaryResponse struct {
	UserID          string                     `json:"user_id"`
	Month           int                        `json:"month"`
	Year            int                        `json:"year"`
	PresentCredit   float64                    `json:"present_credit"`
	HalfDays        int                        `json:"half_days"`
	FullDays        int                        `json:"full_days"`
	ZeroDays        int                        `json:"zero_days"`
	UnderworkAlerts int                        `json:"underwork_alerts"`
	OvertimeHours   float64                    `json:"overtime_hours"`
	Days            []DailyComputationResponse `json:"days"`
}

type OverrideResponse struct {
	UserID    string  `json:"user_id"`
	Date      string  `json:"date"`
	DayCredit float64 `json:"day_credit"`
	Reason    string  `json:"reason"`
	UpdatedBy string  `json:"updated_by"`
	UpdatedAt string  `json:"updated_at"`
}

func NewOverrideResponse(o Override) OverrideResponse {
	return OverrideResponse{
		UserID:    o.UserID,
		Date:      o.Date.Format(time.DateOnly),
		DayCredit: o.DayCredit,
		Reason:    o.Reason,
		UpdatedBy: o.UpdatedBy,
		UpdatedAt: o.UpdatedAt.Format(time.RFC3339),
	}
}
