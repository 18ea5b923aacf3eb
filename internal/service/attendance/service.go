package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/geo"
	"github.com/google/uuid"
)

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)

type AttendanceServiceImpl struct {
	records    attendance.AttendanceRepository
	overrides  attendance.OverrideRepository
	users      user.UserRepository
	classifier *Classifier
	fence      geo.Fence
	now        func() time.Time
}

func NewAttendanceService(
	records attendance.AttendanceRepository,
	overrides attendance.OverrideRepository,
	users user.UserRepository,
	classifier *Classifier,
	fence geo.Fence,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		records:    records,
		overrides:  overrides,
		users:      users,
		classifier: classifier,
		fence:      fence,
		now:        time.Now,
	}
}

// WithClock replaces the time source.
func (s *AttendanceServiceImpl) WithClock(now func() time.Time) *AttendanceServiceImpl {
	s.now = now
	return s
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	caller, err := authorize(ctx, user.PermissionAttendanceCreate)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := s.records.GetOpenByUser(ctx, caller.ID); err == nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	} else if !errors.Is(err, attendance.ErrNotCheckedIn) {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up open attendance: %w", err)
	}

	nowUTC := s.now().UTC()
	result := s.fence.Check(geo.Point{Latitude: req.Latitude, Longitude: req.Longitude})

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	created, err := s.records.Create(ctx, attendance.Record{
		ID:          id.String(),
		UserID:      caller.ID,
		Date:        s.classifier.DateOf(nowUTC),
		CheckInTime: nowUTC,
		CheckInLocation: attendance.Location{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Accuracy:  req.Accuracy,
		},
		WithinGeofence: result.WithinGeofence,
		Reason:         outsideReason(result, req.Reason),
		Status:         attendance.StatusPresent,
		OvertimeStatus: attendance.OvertimeNone,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	if !result.WithinGeofence {
		slog.Warn("Check-in outside geofence", "user_id", caller.ID, "record_id", created.ID, "distance_meters", result.DistanceMeters)
	}

	resp := attendance.NewRecordResponse(created)
	resp.DistanceMeters = &result.DistanceMeters
	return resp, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	caller, err := authorize(ctx, user.PermissionAttendanceCreate)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	open, err := s.records.GetOpenByUser(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrNotCheckedIn) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up open attendance: %w", err)
	}

	nowUTC := s.now().UTC()
	result := s.fence.Check(geo.Point{Latitude: req.Latitude, Longitude: req.Longitude})
	overtimeHours, err := s.sessionOvertime(ctx, open, nowUTC)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	open.CheckOutTime = &nowUTC
	open.CheckOutLocation = &attendance.Location{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Accuracy:  req.Accuracy,
	}
	within := result.WithinGeofence
	open.CheckOutWithinGeofence = &within
	if open.Reason == nil {
		open.Reason = outsideReason(result, req.Reason)
	}
	open.PotentialOvertimeHours = overtimeHours
	if overtimeHours > 0 {
		open.OvertimeStatus = attendance.OvertimePending
	}

	closed, err := s.records.CloseOpen(ctx, open)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to close attendance record: %w", err)
	}

	if closed.OvertimeStatus == attendance.OvertimePending {
		slog.Info("Overtime pending review", "user_id", caller.ID, "record_id", closed.ID, "hours", closed.PotentialOvertimeHours)
	}

	resp := attendance.NewRecordResponse(closed)
	resp.DistanceMeters = &result.DistanceMeters
	return resp, nil
}

// GetDailyLog implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDailyLog(ctx context.Context, req attendance.DailyLogRequest) (attendance.DailyLogResponse, error) {
	if _, err := authorizeView(ctx, req.UserID); err != nil {
		return attendance.DailyLogResponse{}, err
	}
	date, err := req.Validate()
	if err != nil {
		return attendance.DailyLogResponse{}, err
	}
	if err := s.ensureUser(ctx, req.UserID); err != nil {
		return attendance.DailyLogResponse{}, err
	}

	records, err := s.records.ListByUserAndRange(ctx, req.UserID, date, date)
	if err != nil {
		return attendance.DailyLogResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}
	overrides, err := s.overrides.ListByUserAndRange(ctx, req.UserID, date, date)
	if err != nil {
		return attendance.DailyLogResponse{}, fmt.Errorf("failed to list attendance overrides: %w", err)
	}

	day := s.classifier.ClassifyRecords(date, records)
	if len(records) == 0 {
		day = attendance.DailyComputation{Date: date, Status: attendance.DayAbsent}
	}
	merged := MergeOverrides([]attendance.DailyComputation{day}, overrides)

	resp := attendance.DailyLogResponse{
		UserID:      req.UserID,
		Computation: attendance.NewDailyComputationResponse(merged[0]),
		Records:     make([]attendance.RecordResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, attendance.NewRecordResponse(r))
	}
	if len(overrides) > 0 {
		o := attendance.NewOverrideResponse(overrides[0])
		resp.Override = &o
	}
	return resp, nil
}

// GetMonthlySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonthlySummary(ctx context.Context, req attendance.MonthlySummaryRequest) (attendance.MonthlySummaryResponse, error) {
	if _, err := authorizeView(ctx, req.UserID); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}
	if err := s.ensureUser(ctx, req.UserID); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	from := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	records, err := s.records.ListByUserAndRange(ctx, req.UserID, from, to)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}
	overrides, err := s.overrides.ListByUserAndRange(ctx, req.UserID, from, to)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to list attendance overrides: %w", err)
	}

	days := MergeOverrides(s.classifyByDate(records), overrides)
	summary := Aggregate(days)

	resp := attendance.MonthlySummaryResponse{
		UserID:          req.UserID,
		Month:           req.Month,
		Year:            req.Year,
		PresentCredit:   summary.PresentCredit,
		HalfDays:        summary.HalfDays,
		FullDays:        summary.FullDays,
		ZeroDays:        summary.ZeroDays,
		UnderworkAlerts: summary.UnderworkAlerts,
		OvertimeHours:   summary.OvertimeHours,
		Days:            make([]attendance.DailyComputationResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, attendance.NewDailyComputationResponse(d))
	}
	return resp, nil
}

// SetOverride implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SetOverride(ctx context.Context, req attendance.OverrideRequest) (attendance.OverrideResponse, error) {
	caller, err := authorize(ctx, user.PermissionAttendanceOverride)
	if err != nil {
		return attendance.OverrideResponse{}, err
	}
	date, err := req.Validate()
	if err != nil {
		return attendance.OverrideResponse{}, err
	}
	if err := s.ensureUser(ctx, req.UserID); err != nil {
		return attendance.OverrideResponse{}, err
	}

	saved, err := s.overrides.Upsert(ctx, attendance.Override{
		UserID:    req.UserID,
		Date:      date,
		DayCredit: *req.DayCredit,
		Reason:    strings.TrimSpace(req.Reason),
		UpdatedBy: caller.ID,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return attendance.OverrideResponse{}, fmt.Errorf("failed to save attendance override: %w", err)
	}

	slog.Info("Attendance override saved", "key", saved.Key(), "day_credit", saved.DayCredit, "updated_by", caller.ID)
	return attendance.NewOverrideResponse(saved), nil
}

func (s *AttendanceServiceImpl) classifyByDate(records []attendance.Record) []attendance.DailyComputation {
	byDate := make(map[string][]attendance.Record)
	var dates []time.Time
	for _, r := range records {
		key := r.Date.Format(time.DateOnly)
		if _, ok := byDate[key]; !ok {
			dates = append(dates, r.Date)
		}
		byDate[key] = append(byDate[key], r)
	}

	days := make([]attendance.DailyComputation, 0, len(dates))
	for _, d := range dates {
		days = append(days, s.classifier.ClassifyRecords(d, byDate[d.Format(time.DateOnly)]))
	}
	return days
}

// sessionOvertime is the overtime a closing session adds to its day: overtime over all
// closed sessions of that date minus what earlier sessions already put up for review.
func (s *AttendanceServiceImpl) sessionOvertime(ctx context.Context, open attendance.Record, checkOut time.Time) (float64, error) {
	date := open.Date
	if date.IsZero() {
		date = s.classifier.DateOf(open.CheckInTime)
	}

	records, err := s.records.ListByUserAndRange(ctx, open.UserID, date, date)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance records: %w", err)
	}

	var claimed float64
	sessions := make([]attendance.Record, 0, len(records)+1)
	for _, r := range records {
		if r.ID == open.ID || r.IsOpen() {
			continue
		}
		claimed += r.PotentialOvertimeHours
		sessions = append(sessions, r)
	}
	closing := open
	closing.CheckOutTime = &checkOut
	sessions = append(sessions, closing)

	day := s.classifier.ClassifyRecords(date, sessions)
	return round2(math.Max(0, day.OvertimeHours-claimed)), nil
}

func (s *AttendanceServiceImpl) ensureUser(ctx context.Context, id string) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	return nil
}

func authorize(ctx context.Context, permission user.Permission) (user.User, error) {
	caller, err := user.FromContext(ctx)
	if err != nil {
		return user.User{}, err
	}
	if !caller.Can(permission) {
		return user.User{}, user.ErrInsufficientPermissions
	}
	return caller, nil
}

// authorizeView allows the user's own records or any record with attendance.view_all.
func authorizeView(ctx context.Context, targetUserID string) (user.User, error) {
	caller, err := user.FromContext(ctx)
	if err != nil {
		return user.User{}, err
	}
	if caller.ID == targetUserID && caller.Can(user.PermissionAttendanceViewOwn) {
		return caller, nil
	}
	if caller.Can(user.PermissionAttendanceViewAll) {
		return caller, nil
	}
	return user.User{}, user.ErrInsufficientPermissions
}

func outsideReason(result geo.Result, reason *string) *string {
	if result.WithinGeofence || reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
