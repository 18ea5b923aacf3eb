package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	id, user_id, date, check_in_time, check_out_time,
	check_in_latitude, check_in_longitude, check_in_accuracy,
	check_out_latitude, check_out_longitude, check_out_accuracy,
	within_geofence, check_out_within_geofence, reason, status,
	potential_overtime_hours, overtime_status, approved_overtime_hours,
	reviewed_by, reviewed_at, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var (
		r                      attendance.Record
		outLat, outLon, outAcc *float64
	)
	err := row.Scan(
		&r.ID, &r.UserID, &r.Date, &r.CheckInTime, &r.CheckOutTime,
		&r.CheckInLocation.Latitude, &r.CheckInLocation.Longitude, &r.CheckInLocation.Accuracy,
		&outLat, &outLon, &outAcc,
		&r.WithinGeofence, &r.CheckOutWithinGeofence, &r.Reason, &r.Status,
		&r.PotentialOvertimeHours, &r.OvertimeStatus, &r.ApprovedOvertimeHours,
		&r.ReviewedBy, &r.ReviewedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	if outLat != nil && outLon != nil {
		r.CheckOutLocation = &attendance.Location{Latitude: *outLat, Longitude: *outLon, Accuracy: outAcc}
	}
	return r, nil
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, user_id, date, check_in_time,
			check_in_latitude, check_in_longitude, check_in_accuracy,
			within_geofence, reason, status, overtime_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + attendanceColumns

	created, err := scanRecord(q.QueryRow(ctx, query,
		record.ID,
		record.UserID,
		record.Date,
		record.CheckInTime,
		record.CheckInLocation.Latitude,
		record.CheckInLocation.Longitude,
		record.CheckInLocation.Accuracy,
		record.WithinGeofence,
		record.Reason,
		record.Status,
		record.OvertimeStatus,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`

	r, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}
	return r, nil
}

// GetOpenByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenByUser(ctx context.Context, userID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1
		  AND check_out_time IS NULL
		ORDER BY check_in_time DESC
		LIMIT 1
	`

	r, err := scanRecord(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrNotCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to get open attendance record: %w", err)
	}
	return r, nil
}

// CloseOpen implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseOpen(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	var outLat, outLon, outAcc *float64
	if record.CheckOutLocation != nil {
		outLat = &record.CheckOutLocation.Latitude
		outLon = &record.CheckOutLocation.Longitude
		outAcc = record.CheckOutLocation.Accuracy
	}

	query := `
		UPDATE attendance_records
		SET check_out_time = $2,
			check_out_latitude = $3,
			check_out_longitude = $4,
			check_out_accuracy = $5,
			check_out_within_geofence = $6,
			reason = $7,
			potential_overtime_hours = $8,
			overtime_status = $9,
			updated_at = NOW()
		WHERE id = $1
		  AND check_out_time IS NULL
		RETURNING ` + attendanceColumns

	closed, err := scanRecord(q.QueryRow(ctx, query,
		record.ID,
		record.CheckOutTime,
		outLat,
		outLon,
		outAcc,
		record.CheckOutWithinGeofence,
		record.Reason,
		record.PotentialOvertimeHours,
		record.OvertimeStatus,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Record{}, fmt.Errorf("failed to close attendance record: %w", err)
	}
	return closed, nil
}

// ListByUserAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1
		  AND date BETWEEN $2 AND $3
		ORDER BY check_in_time ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan attendance records: %w", err)
	}
	return records, nil
}

// CountPresentDays implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountPresentDays(ctx context.Context, userID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(DISTINCT date)
		FROM attendance_records
		WHERE user_id = $1
		  AND date BETWEEN $2 AND $3
		  AND status = $4
	`

	var count int
	if err := q.QueryRow(ctx, query, userID, from, to, attendance.StatusPresent).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count present days: %w", err)
	}
	return count, nil
}

// ListPendingOvertime implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListPendingOvertime(ctx context.Context) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE overtime_status = $1
		ORDER BY check_in_time ASC
	`

	rows, err := q.Query(ctx, query, attendance.OvertimePending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending overtime: %w", err)
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pending overtime: %w", err)
	}
	return records, nil
}

// ResolveOvertime implements attendance.AttendanceRepository.
func (a *attendanceRepository) ResolveOvertime(ctx context.Context, id string, status attendance.OvertimeStatus, approvedHours float64, reviewerID string, reviewedAt time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET overtime_status = $2,
			approved_overtime_hours = $3,
			reviewed_by = $4,
			reviewed_at = $5,
			updated_at = NOW()
		WHERE id = $1
		  AND overtime_status = 'Pending'
		RETURNING ` + attendanceColumns

	resolved, err := scanRecord(q.QueryRow(ctx, query, id, status, approvedHours, reviewerID, reviewedAt))
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, fmt.Errorf("failed to resolve overtime: %w", err)
	}

	// Nothing matched: either the record is gone or someone else resolved it first.
	if _, err := a.GetByID(ctx, id); err != nil {
		return attendance.Record{}, err
	}
	return attendance.Record{}, attendance.ErrOvertimeAlreadyReviewed
}
