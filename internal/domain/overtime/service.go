package overtime

import (
	"context"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
)

// OvertimeService drives the one-shot Pending -> Approved | Rejected review.
type OvertimeService interface {
	ListPending(ctx context.Context) ([]attendance.RecordResponse, error)
	Review(ctx context.Context, req ReviewRequest) (attendance.RecordResponse, error)
}
