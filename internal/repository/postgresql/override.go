package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
)

type overrideRepository struct {
	db *database.DB
}

func NewOverrideRepository(db *database.DB) attendance.OverrideRepository {
	return &overrideRepository{db: db}
}

// Upsert implements attendance.OverrideRepository.
func (r *overrideRepository) Upsert(ctx context.Context, o attendance.Override) (attendance.Override, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_overrides (user_id, date, day_credit, reason, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, date) DO UPDATE SET
			day_credit = EXCLUDED.day_credit,
			reason = EXCLUDED.reason,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at
		RETURNING user_id, date, day_credit, reason, updated_by, updated_at
	`

	var saved attendance.Override
	err := q.QueryRow(ctx, query, o.UserID, o.Date, o.DayCredit, o.Reason, o.UpdatedBy, o.UpdatedAt).Scan(
		&saved.UserID, &saved.Date, &saved.DayCredit, &saved.Reason, &saved.UpdatedBy, &saved.UpdatedAt,
	)
	if err != nil {
		return attendance.Override{}, fmt.Errorf("failed to upsert attendance override: %w", err)
	}
	return saved, nil
}

// ListByUserAndRange implements attendance.OverrideRepository.
func (r *overrideRepository) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Override, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, date, day_credit, reason, updated_by, updated_at
		FROM attendance_overrides
		WHERE user_id = $1
		  AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance overrides: %w", err)
	}
	defer rows.Close()

	var overrides []attendance.Override
	for rows.Next() {
		var o attendance.Override
		if err := rows.Scan(&o.UserID, &o.Date, &o.DayCredit, &o.Reason, &o.UpdatedBy, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance override: %w", err)
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}
