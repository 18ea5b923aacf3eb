package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKES =====

type fakePayrollRepo struct {
	records  map[string]payroll.PayrollRecord
	batches  []int
	failFrom int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.PayrollRecord), failFrom: -1}
}

func (f *fakePayrollRepo) UpsertBatch(ctx context.Context, records []payroll.PayrollRecord) error {
	if f.failFrom >= 0 && len(f.batches) >= f.failFrom {
		return errors.New("connection reset")
	}
	f.batches = append(f.batches, len(records))
	for _, r := range records {
		f.records[r.ID] = r
	}
	return nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r, nil
}

func (f *fakePayrollRepo) ListByPeriod(ctx context.Context, month, year int) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, r := range f.records {
		if r.Month == month && r.Year == year {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakePayrollRepo) MarkPaid(ctx context.Context, id, paidBy string, paidAt time.Time) (payroll.PayrollRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	if r.Status == payroll.PayrollStatusPaid {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyPaid
	}
	r.Status = payroll.PayrollStatusPaid
	r.PaidBy = &paidBy
	r.PaidAt = &paidAt
	f.records[id] = r
	return r, nil
}

type fakeAttendance struct {
	attendance.AttendanceRepository
	present map[string]int
}

func (f *fakeAttendance) CountPresentDays(ctx context.Context, userID string, from, to time.Time) (int, error) {
	return f.present[userID], nil
}

type fakeUsers struct {
	user.UserRepository
	users []user.User
}

func (f *fakeUsers) ListActiveByRoles(ctx context.Context, roles []user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		for _, r := range roles {
			if u.Role == r && u.Active {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

type fixedWorkingDays int

func (f fixedWorkingDays) ComputeWorkingDays(ctx context.Context, year, month int) (calendar.WorkingDays, error) {
	return calendar.WorkingDays{Year: year, Month: month, TotalWorkingDays: int(f)}, nil
}

// ===== SETUP =====

func salaried(id string, role user.Role, st user.SalaryType, amount int64) user.User {
	return user.User{ID: id, Name: "User " + id, Role: role, SalaryType: &st, SalaryAmount: decimal.NewFromInt(amount), Active: true}
}

func adminCtx() context.Context {
	return user.NewContext(context.Background(), user.User{ID: "admin-1", Role: user.RoleAdmin})
}

func newPayrollService(repo *fakePayrollRepo, users []user.User, present map[string]int, working int) *PayrollServiceImpl {
	return NewPayrollService(repo, &fakeAttendance{present: present}, &fakeUsers{users: users}, fixedWorkingDays(working)).
		WithClock(func() time.Time { return time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC) })
}

// ===== GENERATE =====

func TestGenerate(t *testing.T) {
	repo := newFakePayrollRepo()
	users := []user.User{
		salaried("emp-1", user.RoleEmployee, user.SalaryMonthly, 25000),
		salaried("hr-1", user.RoleHR, user.SalaryDaily, 1000),
		salaried("lead-1", user.RoleTeamLead, user.SalaryMonthly, 50000),
		salaried("admin-1", user.RoleAdmin, user.SalaryMonthly, 90000),
		salaried("client-1", user.RoleClient, user.SalaryDaily, 100),
		{ID: "emp-2", Role: user.RoleEmployee, Active: true},
	}
	svc := newPayrollService(repo, users, map[string]int{"emp-1": 20, "hr-1": 12, "lead-1": 25, "admin-1": 25}, 25)

	resp, err := svc.Generate(adminCtx(), payroll.GenerateRequest{Month: 1, Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Generated)
	assert.Equal(t, 25, resp.TotalWorkingDays)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "emp-2", resp.Skipped[0].UserID)

	emp := repo.records["emp-1_1_2025"]
	assert.True(t, decimal.NewFromInt(20000).Equal(emp.SalaryPaid))
	assert.Equal(t, 20, emp.PresentDays)
	assert.Equal(t, payroll.PayrollStatusUnpaid, emp.Status)

	assert.True(t, decimal.NewFromInt(12000).Equal(repo.records["hr-1_1_2025"].SalaryPaid))
	assert.True(t, decimal.NewFromInt(50000).Equal(repo.records["lead-1_1_2025"].SalaryPaid))
	assert.NotContains(t, repo.records, "admin-1_1_2025")
	assert.NotContains(t, repo.records, "client-1_1_2025")
}

func TestGenerate_ZeroWorkingDays(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newPayrollService(repo, []user.User{salaried("emp-1", user.RoleEmployee, user.SalaryMonthly, 25000)}, nil, 0)

	_, err := svc.Generate(adminCtx(), payroll.GenerateRequest{Month: 1, Year: 2025})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
	assert.Empty(t, repo.records)
}

func TestGenerate_IdempotentAndResetsStatus(t *testing.T) {
	repo := newFakePayrollRepo()
	users := []user.User{salaried("emp-1", user.RoleEmployee, user.SalaryMonthly, 31000)}
	svc := newPayrollService(repo, users, map[string]int{"emp-1": 17}, 23)
	ctx := adminCtx()

	_, err := svc.Generate(ctx, payroll.GenerateRequest{Month: 1, Year: 2025})
	require.NoError(t, err)
	first := repo.records["emp-1_1_2025"]

	_, err = svc.MarkPaid(ctx, "emp-1_1_2025")
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusPaid, repo.records["emp-1_1_2025"].Status)

	_, err = svc.Generate(ctx, payroll.GenerateRequest{Month: 1, Year: 2025})
	require.NoError(t, err)
	second := repo.records["emp-1_1_2025"]

	assert.True(t, first.SalaryPaid.Equal(second.SalaryPaid))
	assert.Equal(t, "22913.04", second.SalaryPaid.String())
	assert.Equal(t, payroll.PayrollStatusUnpaid, second.Status)
	assert.Nil(t, second.PaidAt)
	assert.Len(t, repo.records, 1)
}

func TestGenerate_Batches(t *testing.T) {
	repo := newFakePayrollRepo()
	var users []user.User
	present := make(map[string]int)
	for i := 0; i < 901; i++ {
		id := fmt.Sprintf("emp-%03d", i)
		users = append(users, salaried(id, user.RoleEmployee, user.SalaryDaily, 100))
		present[id] = 1
	}
	svc := newPayrollService(repo, users, present, 20)

	resp, err := svc.Generate(adminCtx(), payroll.GenerateRequest{Month: 3, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, []int{400, 400, 101}, repo.batches)
	assert.Equal(t, 901, resp.Generated)
}

func TestGenerate_PartialBatchFailureKeepsEarlierBatches(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.failFrom = 1
	var users []user.User
	for i := 0; i < 450; i++ {
		users = append(users, salaried(fmt.Sprintf("emp-%03d", i), user.RoleEmployee, user.SalaryDaily, 100))
	}
	svc := newPayrollService(repo, users, nil, 20)

	_, err := svc.Generate(adminCtx(), payroll.GenerateRequest{Month: 3, Year: 2025})
	assert.Error(t, err)
	assert.Len(t, repo.records, 400)
}

func TestGenerate_Authorization(t *testing.T) {
	svc := newPayrollService(newFakePayrollRepo(), nil, nil, 20)

	hr := user.NewContext(context.Background(), user.User{ID: "hr-1", Role: user.RoleHR})
	_, err := svc.Generate(hr, payroll.GenerateRequest{Month: 1, Year: 2025})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.Generate(context.Background(), payroll.GenerateRequest{Month: 1, Year: 2025})
	assert.ErrorIs(t, err, user.ErrNoUserInContext)
}

func TestGenerate_Validation(t *testing.T) {
	svc := newPayrollService(newFakePayrollRepo(), nil, nil, 20)

	_, err := svc.Generate(adminCtx(), payroll.GenerateRequest{Month: 0, Year: 2025})
	assert.Error(t, err)
	_, err = svc.Generate(adminCtx(), payroll.GenerateRequest{Month: 1, Year: 1800})
	assert.Error(t, err)
}

// ===== LIST / PAY / EXPORT =====

func TestListAndMarkPaid(t *testing.T) {
	repo := newFakePayrollRepo()
	users := []user.User{
		salaried("emp-1", user.RoleEmployee, user.SalaryDaily, 100),
		salaried("emp-2", user.RoleEmployee, user.SalaryDaily, 200),
	}
	svc := newPayrollService(repo, users, map[string]int{"emp-1": 10, "emp-2": 5}, 20)
	ctx := adminCtx()

	_, err := svc.Generate(ctx, payroll.GenerateRequest{Month: 1, Year: 2025})
	require.NoError(t, err)

	list, err := svc.List(ctx, 1, 2025)
	require.NoError(t, err)
	assert.Len(t, list.Records, 2)
	assert.True(t, decimal.NewFromInt(2000).Equal(list.TotalPaid))

	paid, err := svc.MarkPaid(ctx, "emp-2_1_2025")
	require.NoError(t, err)
	assert.Equal(t, "Paid", paid.Status)
	require.NotNil(t, paid.PaidBy)
	assert.Equal(t, "admin-1", *paid.PaidBy)

	_, err = svc.MarkPaid(ctx, "emp-2_1_2025")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyPaid)

	_, err = svc.MarkPaid(ctx, "missing_1_2025")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestExport(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newPayrollService(repo, []user.User{salaried("emp-1", user.RoleEmployee, user.SalaryDaily, 100)}, map[string]int{"emp-1": 3}, 20)
	ctx := adminCtx()

	_, err := svc.Generate(ctx, payroll.GenerateRequest{Month: 1, Year: 2025})
	require.NoError(t, err)

	file, err := svc.Export(ctx, 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, "payroll_2025_01.xlsx", file.Filename)
	assert.NotEmpty(t, file.Content)
	assert.Contains(t, file.ContentType, "spreadsheetml")
}
