package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// BatchSize bounds the records written per transaction during generation.
const BatchSize = 400

// WorkingDaysCalculator is the part of the calendar service payroll depends on.
type WorkingDaysCalculator interface {
	ComputeWorkingDays(ctx context.Context, year, month int) (calendar.WorkingDays, error)
}

var _ payroll.PayrollService = (*PayrollServiceImpl)(nil)

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	workingDays    WorkingDaysCalculator
	batchSize      int
	now            func() time.Time
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	workingDays WorkingDaysCalculator,
) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		workingDays:    workingDays,
		batchSize:      BatchSize,
		now:            time.Now,
	}
}

// WithClock replaces the time source.
func (s *PayrollServiceImpl) WithClock(now func() time.Time) *PayrollServiceImpl {
	s.now = now
	return s
}

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.GenerateResponse, error) {
	if _, err := authorize(ctx); err != nil {
		return payroll.GenerateResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.GenerateResponse{}, err
	}

	wd, err := s.workingDays.ComputeWorkingDays(ctx, req.Year, req.Month)
	if err != nil {
		return payroll.GenerateResponse{}, fmt.Errorf("failed to compute working days: %w", err)
	}
	if wd.TotalWorkingDays == 0 {
		return payroll.GenerateResponse{}, payroll.ErrInvalidPeriod
	}

	users, err := s.userRepo.ListActiveByRoles(ctx, user.PayrollRoles)
	if err != nil {
		return payroll.GenerateResponse{}, fmt.Errorf("failed to list payroll users: %w", err)
	}

	from := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	generatedAt := s.now().UTC()

	resp := payroll.GenerateResponse{
		Month:            req.Month,
		Year:             req.Year,
		TotalWorkingDays: wd.TotalWorkingDays,
		Records:          make([]payroll.PayrollRecordResponse, 0, len(users)),
	}

	records := make([]payroll.PayrollRecord, 0, len(users))
	for _, u := range users {
		if !u.IsPayrollEligible() {
			continue
		}
		if u.SalaryType == nil {
			resp.Skipped = append(resp.Skipped, payroll.SkippedUser{UserID: u.ID, Reason: payroll.ErrNoSalaryConfigured.Error()})
			continue
		}

		present, err := s.attendanceRepo.CountPresentDays(ctx, u.ID, from, to)
		if err != nil {
			return payroll.GenerateResponse{}, fmt.Errorf("failed to count present days for user %s: %w", u.ID, err)
		}

		paid, err := CalculateSalary(*u.SalaryType, u.SalaryAmount, present, wd.TotalWorkingDays)
		if err != nil {
			return payroll.GenerateResponse{}, fmt.Errorf("failed to calculate salary for user %s: %w", u.ID, err)
		}

		name, email := u.Name, u.Email
		records = append(records, payroll.PayrollRecord{
			ID:               payroll.RecordID(u.ID, req.Month, req.Year),
			UserID:           u.ID,
			Month:            req.Month,
			Year:             req.Year,
			PresentDays:      present,
			TotalWorkingDays: wd.TotalWorkingDays,
			SalaryType:       *u.SalaryType,
			SalaryAmount:     u.SalaryAmount,
			SalaryPaid:       paid,
			Status:           payroll.PayrollStatusUnpaid,
			GeneratedAt:      generatedAt,
			UserName:         &name,
			UserEmail:        &email,
		})
	}

	// Batches commit independently; a failure leaves earlier batches in place.
	for start := 0; start < len(records); start += s.batchSize {
		end := min(start+s.batchSize, len(records))
		if err := s.payrollRepo.UpsertBatch(ctx, records[start:end]); err != nil {
			slog.Error("Payroll batch failed", "month", req.Month, "year", req.Year, "written", start, "total", len(records), "error", err)
			return payroll.GenerateResponse{}, fmt.Errorf("failed to write payroll records %d-%d: %w", start, end-1, err)
		}
		resp.Generated = end
	}

	for _, r := range records {
		resp.Records = append(resp.Records, payroll.NewPayrollRecordResponse(r))
	}

	slog.Info("Payroll generated", "month", req.Month, "year", req.Year, "records", resp.Generated, "skipped", len(resp.Skipped))
	return resp, nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, month, year int) (payroll.ListPayrollResponse, error) {
	if _, err := authorize(ctx); err != nil {
		return payroll.ListPayrollResponse{}, err
	}
	if err := validatePeriod(month, year); err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	records, err := s.payrollRepo.ListByPeriod(ctx, month, year)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	resp := payroll.ListPayrollResponse{
		Month:     month,
		Year:      year,
		TotalPaid: decimal.Zero,
		Records:   make([]payroll.PayrollRecordResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.TotalPaid = resp.TotalPaid.Add(r.SalaryPaid)
		resp.Records = append(resp.Records, payroll.NewPayrollRecordResponse(r))
	}
	return resp, nil
}

// MarkPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	caller, err := authorize(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if validator.IsEmpty(id) {
		return payroll.PayrollRecordResponse{}, validator.New("record_id", "record_id is required")
	}

	record, err := s.payrollRepo.MarkPaid(ctx, id, caller.ID, s.now().UTC())
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) || errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid) {
			return payroll.PayrollRecordResponse{}, err
		}
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to mark payroll record paid: %w", err)
	}

	slog.Info("Payroll record paid", "record_id", id, "paid_by", caller.ID)
	return payroll.NewPayrollRecordResponse(record), nil
}

// Export implements payroll.PayrollService.
func (s *PayrollServiceImpl) Export(ctx context.Context, month, year int) (payroll.ExportFile, error) {
	if _, err := authorize(ctx); err != nil {
		return payroll.ExportFile{}, err
	}
	if err := validatePeriod(month, year); err != nil {
		return payroll.ExportFile{}, err
	}

	records, err := s.payrollRepo.ListByPeriod(ctx, month, year)
	if err != nil {
		return payroll.ExportFile{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	content, err := export.PayrollWorkbook(month, year, records, s.now().UTC())
	if err != nil {
		return payroll.ExportFile{}, fmt.Errorf("failed to render payroll export: %w", err)
	}

	return payroll.ExportFile{
		Filename:    export.PayrollFilename(month, year),
		ContentType: export.XLSXContentType,
		Content:     content,
	}, nil
}

func authorize(ctx context.Context) (user.User, error) {
	caller, err := user.FromContext(ctx)
	if err != nil {
		return user.User{}, err
	}
	if !caller.Can(user.PermissionPayrollManage) {
		return user.User{}, user.ErrInsufficientPermissions
	}
	return caller, nil
}

func validatePeriod(month, year int) error {
	req := payroll.GenerateRequest{Month: month, Year: year}
	return req.Validate()
}
