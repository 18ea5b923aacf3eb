package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// CalculateSalary pro-rates a monthly salary over working days or multiplies a daily rate,
// rounded to 2 decimals. Zero working days is ErrInvalidPeriod.
func CalculateSalary(salaryType user.SalaryType, amount decimal.Decimal, presentDays, totalWorkingDays int) (decimal.Decimal, error) {
	if totalWorkingDays <= 0 {
		return decimal.Zero, payroll.ErrInvalidPeriod
	}

	present := decimal.NewFromInt(int64(presentDays))
	switch salaryType {
	case user.SalaryMonthly:
		return present.Mul(amount).Div(decimal.NewFromInt(int64(totalWorkingDays))).Round(2), nil
	case user.SalaryDaily:
		return present.Mul(amount).Round(2), nil
	}
	return decimal.Zero, fmt.Errorf("unknown salary type %q", salaryType)
}
