package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out
	ErrAlreadyCheckedIn  = errors.New("you already have an open check-in")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("attendance record is already checked out")

	// General
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidDayCredit   = errors.New("day credit must be 0, 0.5 or 1")

	// Overtime review
	ErrNoOvertime              = errors.New("attendance record has no overtime to review")
	ErrOvertimeAlreadyReviewed = errors.New("overtime has already been reviewed")
)
