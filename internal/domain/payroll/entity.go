package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusUnpaid PayrollStatus = "Unpaid"
	PayrollStatusPaid   PayrollStatus = "Paid"
)

// PayrollRecord - Generated payroll result for one user and month
type PayrollRecord struct {
	ID               string
	UserID           string
	Month            int
	Year             int
	PresentDays      int
	TotalWorkingDays int
	SalaryType       user.SalaryType
	SalaryAmount     decimal.Decimal
	SalaryPaid       decimal.Decimal
	Status           PayrollStatus
	GeneratedAt      time.Time
	PaidAt           *time.Time
	PaidBy           *string

	// Joined fields
	UserName  *string
	UserEmail *string
}

// RecordID is the payroll identity, userId_month_year.
func RecordID(userID string, month, year int) string {
	return fmt.Sprintf("%s_%d_%d", userID, month, year)
}
