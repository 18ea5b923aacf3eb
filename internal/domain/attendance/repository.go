package attendance

import (
	"context"
	"time"
)

// AttendanceRepository stores check-in/check-out sessions.
type AttendanceRepository interface {
	// Create inserts an open record. A second open record for the same user yields ErrAlreadyCheckedIn.
	Create(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// GetOpenByUser returns the user's open record or ErrNotCheckedIn.
	GetOpenByUser(ctx context.Context, userID string) (Record, error)

	// CloseOpen writes the check-out fields only while check_out_time is still NULL.
	// The loser of a concurrent close gets ErrAlreadyCheckedOut.
	CloseOpen(ctx context.Context, record Record) (Record, error)

	// ListByUserAndRange returns records whose date lies in [from, to], oldest first.
	ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]Record, error)

	// CountPresentDays counts distinct dates in [from, to] with a Present record.
	CountPresentDays(ctx context.Context, userID string, from, to time.Time) (int, error)

	// ListPendingOvertime returns records waiting for overtime review, oldest first.
	ListPendingOvertime(ctx context.Context) ([]Record, error)

	// ResolveOvertime moves a Pending record to status. Non-pending records yield ErrOvertimeAlreadyReviewed.
	ResolveOvertime(ctx context.Context, id string, status OvertimeStatus, approvedHours float64, reviewerID string, reviewedAt time.Time) (Record, error)
}

// OverrideRepository stores day-credit corrections keyed by userId_date.
type OverrideRepository interface {
	Upsert(ctx context.Context, override Override) (Override, error)
	ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]Override, error)
}
