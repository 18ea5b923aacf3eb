package overtime

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecords struct {
	attendance.AttendanceRepository
	byID map[string]attendance.Record
}

func (f *fakeRecords) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	r, ok := f.byID[id]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return r, nil
}

func (f *fakeRecords) ListPendingOvertime(ctx context.Context) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.byID {
		if r.OvertimeStatus == attendance.OvertimePending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecords) ResolveOvertime(ctx context.Context, id string, status attendance.OvertimeStatus, hours float64, reviewer string, at time.Time) (attendance.Record, error) {
	r, ok := f.byID[id]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	if r.OvertimeStatus != attendance.OvertimePending {
		return attendance.Record{}, attendance.ErrOvertimeAlreadyReviewed
	}
	r.OvertimeStatus = status
	r.ApprovedOvertimeHours = hours
	r.ReviewedBy = &reviewer
	r.ReviewedAt = &at
	f.byID[id] = r
	return r, nil
}

var reviewedAt = time.Date(2025, 1, 7, 5, 0, 0, 0, time.UTC)

func newService() (*OvertimeServiceImpl, *fakeRecords) {
	in := time.Date(2025, 1, 6, 3, 30, 0, 0, time.UTC)
	out := in.Add(11*time.Hour + 30*time.Minute)
	repo := &fakeRecords{byID: map[string]attendance.Record{
		"rec-ot": {
			ID: "rec-ot", UserID: "emp-1", CheckInTime: in, CheckOutTime: &out,
			Status: attendance.StatusPresent, PotentialOvertimeHours: 2.5, OvertimeStatus: attendance.OvertimePending,
		},
		"rec-plain": {
			ID: "rec-plain", UserID: "emp-1", CheckInTime: in, CheckOutTime: &out,
			Status: attendance.StatusPresent, OvertimeStatus: attendance.OvertimeNone,
		},
	}}
	svc := NewOvertimeService(repo).WithClock(func() time.Time { return reviewedAt })
	return svc, repo
}

func as(role user.Role) context.Context {
	return user.NewContext(context.Background(), user.User{ID: "rev-1", Role: role})
}

func TestReview_Approve(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.Review(as(user.RoleTeamLead), overtime.ReviewRequest{RecordID: "rec-ot", Decision: overtime.DecisionApprove})
	require.NoError(t, err)
	require.NotNil(t, resp.OvertimeStatus)
	assert.Equal(t, "Approved", *resp.OvertimeStatus)
	assert.Equal(t, 2.5, resp.ApprovedOvertimeHours)

	stored := repo.byID["rec-ot"]
	require.NotNil(t, stored.ReviewedBy)
	assert.Equal(t, "rev-1", *stored.ReviewedBy)
	assert.True(t, reviewedAt.Equal(*stored.ReviewedAt))
}

func TestReview_Reject(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Review(as(user.RoleHR), overtime.ReviewRequest{RecordID: "rec-ot", Decision: overtime.DecisionReject})
	require.NoError(t, err)
	assert.Equal(t, attendance.OvertimeRejected, repo.byID["rec-ot"].OvertimeStatus)
	assert.Zero(t, repo.byID["rec-ot"].ApprovedOvertimeHours)
}

func TestReview_SecondReviewConflicts(t *testing.T) {
	svc, repo := newService()
	ctx := as(user.RoleAdmin)

	_, err := svc.Review(ctx, overtime.ReviewRequest{RecordID: "rec-ot", Decision: overtime.DecisionApprove})
	require.NoError(t, err)

	_, err = svc.Review(ctx, overtime.ReviewRequest{RecordID: "rec-ot", Decision: overtime.DecisionReject})
	assert.ErrorIs(t, err, attendance.ErrOvertimeAlreadyReviewed)
	assert.Equal(t, attendance.OvertimeApproved, repo.byID["rec-ot"].OvertimeStatus)
	assert.Equal(t, 2.5, repo.byID["rec-ot"].ApprovedOvertimeHours)
}

func TestReview_Errors(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		req     overtime.ReviewRequest
		wantErr error
	}{
		{"employee cannot review", as(user.RoleEmployee), overtime.ReviewRequest{RecordID: "rec-ot", Decision: overtime.DecisionApprove}, user.ErrInsufficientPermissions},
		{"sub admin cannot review", as(user.RoleSubAdmin), overtime.ReviewRequest{RecordID: "rec-ot", Decision: overtime.DecisionApprove}, user.ErrInsufficientPermissions},
		{"no identity", context.Background(), overtime.ReviewRequest{RecordID: "rec-ot", Decision: overtime.DecisionApprove}, user.ErrNoUserInContext},
		{"unknown record", as(user.RoleHR), overtime.ReviewRequest{RecordID: "missing", Decision: overtime.DecisionApprove}, attendance.ErrAttendanceNotFound},
		{"record without overtime", as(user.RoleHR), overtime.ReviewRequest{RecordID: "rec-plain", Decision: overtime.DecisionApprove}, attendance.ErrNoOvertime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()
			_, err := svc.Review(tt.ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, attendance.OvertimePending, repo.byID["rec-ot"].OvertimeStatus)
		})
	}
}

func TestReview_InvalidDecision(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Review(as(user.RoleHR), overtime.ReviewRequest{RecordID: "rec-ot", Decision: "maybe"})
	require.Error(t, err)
	assert.IsType(t, validator.ValidationErrors{}, err)
}

func TestListPending(t *testing.T) {
	svc, _ := newService()

	pending, err := svc.ListPending(as(user.RoleTeamLead))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "rec-ot", pending[0].ID)

	_, err = svc.ListPending(as(user.RoleEmployee))
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}
