package postgresqltest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	ctx := context.Background()

	setup, err := NewTestDatabase(ctx)
	if errors.Is(err, ErrNoTestDatabase) {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}
	require.NoError(t, err)
	t.Cleanup(setup.Close)

	require.NoError(t, setup.TruncateAllTables(ctx))
	return setup
}

func createUser(t *testing.T, s *TestDatabaseSetup, id string, role user.Role) {
	t.Helper()
	_, err := s.DB.Exec(context.Background(), `
		INSERT INTO users (id, name, email, role, active)
		VALUES ($1, $2, $3, $4, TRUE)
	`, id, "User "+id, id+"@example.com", string(role))
	require.NoError(t, err)
}

func newRecord(userID string, in time.Time) attendance.Record {
	return attendance.Record{
		ID:              uuid.Must(uuid.NewV7()).String(),
		UserID:          userID,
		Date:            time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, time.UTC),
		CheckInTime:     in,
		CheckInLocation: attendance.Location{Latitude: 12.9716, Longitude: 77.5946},
		WithinGeofence:  true,
		Status:          attendance.StatusPresent,
		OvertimeStatus:  attendance.OvertimeNone,
	}
}

func TestAttendanceRepository_OneOpenRecordPerUser(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	createUser(t, s, "emp-1", user.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(s.DB)

	in := time.Date(2025, 1, 6, 3, 30, 0, 0, time.UTC)

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, newRecord("emp-1", in))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	}
	assert.Equal(t, 1, succeeded)
}

func TestAttendanceRepository_CloseOpenOnlyOnce(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	createUser(t, s, "emp-1", user.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(s.DB)

	in := time.Date(2025, 1, 6, 3, 30, 0, 0, time.UTC)
	created, err := repo.Create(ctx, newRecord("emp-1", in))
	require.NoError(t, err)

	open, err := repo.GetOpenByUser(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, open.ID)

	out := in.Add(10 * time.Hour)
	within := true
	open.CheckOutTime = &out
	open.CheckOutLocation = &attendance.Location{Latitude: 12.9716, Longitude: 77.5946}
	open.CheckOutWithinGeofence = &within
	open.PotentialOvertimeHours = 1
	open.OvertimeStatus = attendance.OvertimePending

	closed, err := repo.CloseOpen(ctx, open)
	require.NoError(t, err)
	require.NotNil(t, closed.CheckOutTime)
	assert.True(t, out.Equal(*closed.CheckOutTime))
	assert.Equal(t, attendance.OvertimePending, closed.OvertimeStatus)

	_, err = repo.CloseOpen(ctx, open)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	_, err = repo.GetOpenByUser(ctx, "emp-1")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceRepository_ResolveOvertime(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	createUser(t, s, "emp-1", user.RoleEmployee)
	createUser(t, s, "hr-1", user.RoleHR)
	repo := postgresql.NewAttendanceRepository(s.DB)

	rec := newRecord("emp-1", time.Date(2025, 1, 6, 3, 30, 0, 0, time.UTC))
	_, err := repo.Create(ctx, rec)
	require.NoError(t, err)
	out := rec.CheckInTime.Add(11 * time.Hour)
	rec.CheckOutTime = &out
	rec.PotentialOvertimeHours = 2
	rec.OvertimeStatus = attendance.OvertimePending
	_, err = repo.CloseOpen(ctx, rec)
	require.NoError(t, err)

	pending, err := repo.ListPendingOvertime(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	at := time.Date(2025, 1, 7, 5, 0, 0, 0, time.UTC)
	resolved, err := repo.ResolveOvertime(ctx, rec.ID, attendance.OvertimeApproved, 2, "hr-1", at)
	require.NoError(t, err)
	assert.Equal(t, attendance.OvertimeApproved, resolved.OvertimeStatus)
	assert.Equal(t, 2.0, resolved.ApprovedOvertimeHours)

	_, err = repo.ResolveOvertime(ctx, rec.ID, attendance.OvertimeRejected, 0, "hr-1", at)
	assert.ErrorIs(t, err, attendance.ErrOvertimeAlreadyReviewed)

	_, err = repo.ResolveOvertime(ctx, "missing", attendance.OvertimeRejected, 0, "hr-1", at)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_CountPresentDays(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	createUser(t, s, "emp-1", user.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(s.DB)

	// Two sessions on the 6th count once.
	for _, in := range []time.Time{
		time.Date(2025, 1, 6, 3, 30, 0, 0, time.UTC),
		time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 7, 3, 30, 0, 0, time.UTC),
		time.Date(2025, 2, 3, 3, 30, 0, 0, time.UTC),
	} {
		rec := newRecord("emp-1", in)
		_, err := repo.Create(ctx, rec)
		require.NoError(t, err)
		out := in.Add(time.Hour)
		rec.CheckOutTime = &out
		_, err = repo.CloseOpen(ctx, rec)
		require.NoError(t, err)
	}

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	count, err := repo.CountPresentDays(ctx, "emp-1", from, from.AddDate(0, 1, -1))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	records, err := repo.ListByUserAndRange(ctx, "emp-1", from, from.AddDate(0, 1, -1))
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestOverrideRepository_Upsert(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	createUser(t, s, "emp-1", user.RoleEmployee)
	createUser(t, s, "hr-1", user.RoleHR)
	repo := postgresql.NewOverrideRepository(s.DB)

	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	for _, credit := range []float64{0.5, 1} {
		_, err := repo.Upsert(ctx, attendance.Override{
			UserID: "emp-1", Date: date, DayCredit: credit, Reason: "client visit", UpdatedBy: "hr-1", UpdatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	overrides, err := repo.ListByUserAndRange(ctx, "emp-1", date, date)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, 1.0, overrides[0].DayCredit)
	assert.Equal(t, "emp-1_2025-01-06", overrides[0].Key())
}

func TestPayrollRepository_UpsertResetsPaidState(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	createUser(t, s, "emp-1", user.RoleEmployee)
	createUser(t, s, "admin-1", user.RoleAdmin)
	repo := postgresql.NewPayrollRepository(s.DB)

	rec := payroll.PayrollRecord{
		ID: payroll.RecordID("emp-1", 1, 2025), UserID: "emp-1", Month: 1, Year: 2025,
		PresentDays: 20, TotalWorkingDays: 25, SalaryType: user.SalaryMonthly,
		SalaryAmount: decimal.NewFromInt(25000), SalaryPaid: decimal.NewFromInt(20000),
		Status: payroll.PayrollStatusUnpaid, GeneratedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.UpsertBatch(ctx, []payroll.PayrollRecord{rec}))

	paid, err := repo.MarkPaid(ctx, rec.ID, "admin-1", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusPaid, paid.Status)

	_, err = repo.MarkPaid(ctx, rec.ID, "admin-1", time.Now().UTC())
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyPaid)

	require.NoError(t, repo.UpsertBatch(ctx, []payroll.PayrollRecord{rec}))
	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusUnpaid, got.Status)
	assert.Nil(t, got.PaidAt)
	assert.True(t, decimal.NewFromInt(20000).Equal(got.SalaryPaid))
	require.NotNil(t, got.UserName)
	assert.Equal(t, "User emp-1", *got.UserName)

	_, err = repo.MarkPaid(ctx, "missing_1_2025", "admin-1", time.Now().UTC())
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestUserRepository(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	createUser(t, s, "emp-1", user.RoleEmployee)
	createUser(t, s, "admin-1", user.RoleAdmin)
	repo := postgresql.NewUserRepository(s.DB)

	u, err := repo.GetByID(ctx, "emp-1")
	require.NoError(t, err)
	assert.Nil(t, u.SalaryType)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	updated, err := repo.UpdateSalary(ctx, "emp-1", user.SalaryDaily, decimal.RequireFromString("850.50"))
	require.NoError(t, err)
	require.NotNil(t, updated.SalaryType)
	assert.Equal(t, user.SalaryDaily, *updated.SalaryType)

	listed, err := repo.ListActiveByRoles(ctx, user.PayrollRoles)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "emp-1", listed[0].ID)
}
