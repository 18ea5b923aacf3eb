// Package export renders payroll periods as spreadsheets.
package export

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	payrollSheet    = "Payroll"
	headerRow       = 4
)

var payrollColumns = []string{
	"User ID", "Name", "Email", "Salary Type", "Salary Amount",
	"Present Days", "Working Days", "Salary Paid", "Status", "Paid At",
}

// PayrollFilename is the download name of a period export.
func PayrollFilename(month, year int) string {
	return fmt.Sprintf("payroll_%d_%02d.xlsx", year, month)
}

// PayrollWorkbook writes one row per record followed by a total row.
func PayrollWorkbook(month, year int, records []payroll.PayrollRecord, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	period := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	cells := map[string]interface{}{
		"A1": "PAYROLL REPORT",
		"A2": "Period: " + period.Format("January 2006"),
		"E2": "Generated: " + generatedAt.Format("02 January 2006 15:04:05"),
	}
	for cell, value := range cells {
		if err := f.SetCellValue(payrollSheet, cell, value); err != nil {
			return nil, err
		}
	}
	if err := f.MergeCell(payrollSheet, "A1", "J1"); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(payrollSheet, "A1", "J1", headerStyle); err != nil {
		return nil, err
	}

	for i, title := range payrollColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(payrollSheet, cell, title); err != nil {
			return nil, err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(payrollColumns), headerRow)
	if err := f.SetCellStyle(payrollSheet, first, last, headerStyle); err != nil {
		return nil, err
	}

	total := decimal.Zero
	row := headerRow + 1
	for _, r := range records {
		paidAt := ""
		if r.PaidAt != nil {
			paidAt = r.PaidAt.Format(time.DateOnly)
		}
		values := []interface{}{
			r.UserID,
			deref(r.UserName),
			deref(r.UserEmail),
			string(r.SalaryType),
			r.SalaryAmount.InexactFloat64(),
			r.PresentDays,
			r.TotalWorkingDays,
			r.SalaryPaid.InexactFloat64(),
			string(r.Status),
			paidAt,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(payrollSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		total = total.Add(r.SalaryPaid)
		row++
	}

	if err := f.SetCellValue(payrollSheet, fmt.Sprintf("G%d", row), "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(payrollSheet, fmt.Sprintf("H%d", row), total.InexactFloat64()); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(payrollSheet, "A", "A", 38)
	_ = f.SetColWidth(payrollSheet, "B", "C", 24)
	_ = f.SetColWidth(payrollSheet, "D", "J", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
