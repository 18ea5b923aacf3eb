package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const payrollColumns = `
	p.id, p.user_id, p.month, p.year, p.present_days, p.total_working_days,
	p.salary_type, p.salary_amount, p.salary_paid, p.status,
	p.generated_at, p.paid_at, p.paid_by`

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func scanPayrollRecord(row pgx.Row, joined bool) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	dest := []interface{}{
		&r.ID, &r.UserID, &r.Month, &r.Year, &r.PresentDays, &r.TotalWorkingDays,
		&r.SalaryType, &r.SalaryAmount, &r.SalaryPaid, &r.Status,
		&r.GeneratedAt, &r.PaidAt, &r.PaidBy,
	}
	if joined {
		dest = append(dest, &r.UserName, &r.UserEmail)
	}
	err := row.Scan(dest...)
	return r, err
}

// UpsertBatch implements payroll.PayrollRepository. The whole batch commits or none of it does.
func (r *payrollRepository) UpsertBatch(ctx context.Context, records []payroll.PayrollRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO payroll_records (
			id, user_id, month, year, present_days, total_working_days,
			salary_type, salary_amount, salary_paid, status, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			present_days = EXCLUDED.present_days,
			total_working_days = EXCLUDED.total_working_days,
			salary_type = EXCLUDED.salary_type,
			salary_amount = EXCLUDED.salary_amount,
			salary_paid = EXCLUDED.salary_paid,
			status = EXCLUDED.status,
			generated_at = EXCLUDED.generated_at,
			paid_at = NULL,
			paid_by = NULL
	`

	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		batch := &pgx.Batch{}
		for _, rec := range records {
			batch.Queue(query,
				rec.ID, rec.UserID, rec.Month, rec.Year, rec.PresentDays, rec.TotalWorkingDays,
				rec.SalaryType, rec.SalaryAmount, rec.SalaryPaid, rec.Status, rec.GeneratedAt,
			)
		}

		results := q.SendBatch(ctx, batch)
		for _, rec := range records {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to upsert payroll record %s: %w", rec.ID, err)
			}
		}
		return results.Close()
	})
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `, u.name, u.email
		FROM payroll_records p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

// ListByPeriod implements payroll.PayrollRepository.
func (r *payrollRepository) ListByPeriod(ctx context.Context, month, year int) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `, u.name, u.email
		FROM payroll_records p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.month = $1 AND p.year = $2
		ORDER BY u.name ASC, p.user_id ASC
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkPaid implements payroll.PayrollRepository.
func (r *payrollRepository) MarkPaid(ctx context.Context, id, paidBy string, paidAt time.Time) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records p
		SET status = $2, paid_at = $3, paid_by = $4
		WHERE p.id = $1 AND p.status = $5
		RETURNING ` + payrollColumns

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id, payroll.PayrollStatusPaid, paidAt, paidBy, payroll.PayrollStatusUnpaid), false)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to mark payroll record paid: %w", err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return payroll.PayrollRecord{}, err
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyPaid
}
