package attendance

import (
	"context"
)

// AttendanceService defines the check-in/check-out flow and attendance review.
type AttendanceService interface {
	// CheckIn opens a session for the authenticated user
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes the authenticated user's open session and flags overtime
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// GetDailyLog classifies one user's day with any override merged
	GetDailyLog(ctx context.Context, req DailyLogRequest) (DailyLogResponse, error)

	// GetMonthlySummary aggregates one user's month with overrides merged
	GetMonthlySummary(ctx context.Context, req MonthlySummaryRequest) (MonthlySummaryResponse, error)

	// SetOverride replaces the day credit for a user and date
	SetOverride(ctx context.Context, req OverrideRequest) (OverrideResponse, error)
}
