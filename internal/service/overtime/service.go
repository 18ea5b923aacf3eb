package overtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
)

var _ overtime.OvertimeService = (*OvertimeServiceImpl)(nil)

type OvertimeServiceImpl struct {
	records attendance.AttendanceRepository
	now     func() time.Time
}

func NewOvertimeService(records attendance.AttendanceRepository) *OvertimeServiceImpl {
	return &OvertimeServiceImpl{records: records, now: time.Now}
}

// WithClock replaces the time source.
func (s *OvertimeServiceImpl) WithClock(now func() time.Time) *OvertimeServiceImpl {
	s.now = now
	return s
}

// ListPending implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) ListPending(ctx context.Context) ([]attendance.RecordResponse, error) {
	if _, err := authorize(ctx); err != nil {
		return nil, err
	}

	records, err := s.records.ListPendingOvertime(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending overtime: %w", err)
	}

	resp := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, attendance.NewRecordResponse(r))
	}
	return resp, nil
}

// Review implements overtime.OvertimeService. Pending is the only state a decision applies to.
func (s *OvertimeServiceImpl) Review(ctx context.Context, req overtime.ReviewRequest) (attendance.RecordResponse, error) {
	reviewer, err := authorize(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.records.GetByID(ctx, req.RecordID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	switch record.OvertimeStatus {
	case attendance.OvertimePending:
	case attendance.OvertimeNone:
		return attendance.RecordResponse{}, attendance.ErrNoOvertime
	default:
		return attendance.RecordResponse{}, attendance.ErrOvertimeAlreadyReviewed
	}

	status := req.Decision.Status()
	hours := 0.0
	if status == attendance.OvertimeApproved {
		hours = record.PotentialOvertimeHours
	}

	resolved, err := s.records.ResolveOvertime(ctx, record.ID, status, hours, reviewer.ID, s.now().UTC())
	if err != nil {
		if errors.Is(err, attendance.ErrOvertimeAlreadyReviewed) || errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to resolve overtime: %w", err)
	}

	slog.Info("Overtime reviewed", "record_id", resolved.ID, "user_id", resolved.UserID, "status", resolved.OvertimeStatus, "reviewed_by", reviewer.ID)
	return attendance.NewRecordResponse(resolved), nil
}

func authorize(ctx context.Context) (user.User, error) {
	caller, err := user.FromContext(ctx)
	if err != nil {
		return user.User{}, err
	}
	if !caller.Can(user.PermissionOvertimeReview) {
		return user.User{}, user.ErrInsufficientPermissions
	}
	return caller, nil
}
