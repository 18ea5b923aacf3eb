package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for payroll records.
type PayrollRepository interface {
	// UpsertBatch writes records in one transaction, keyed by ID. Existing rows are overwritten.
	UpsertBatch(ctx context.Context, records []PayrollRecord) error

	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	ListByPeriod(ctx context.Context, month, year int) ([]PayrollRecord, error)

	// MarkPaid sets status Paid only on Unpaid rows. A Paid row yields ErrPayrollRecordAlreadyPaid.
	MarkPaid(ctx context.Context, id string, paidBy string, paidAt time.Time) (PayrollRecord, error)
}
