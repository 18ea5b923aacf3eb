package payroll

import "context"

type PayrollService interface {
	// Generate computes and upserts one record per eligible user, resetting status to Unpaid.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	List(ctx context.Context, month, year int) (ListPayrollResponse, error)
	MarkPaid(ctx context.Context, id string) (PayrollRecordResponse, error)

	// Export renders the period as an xlsx workbook.
	Export(ctx context.Context, month, year int) (ExportFile, error)
}
