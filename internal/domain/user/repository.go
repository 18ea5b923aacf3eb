package user

import (
	"context"

	"github.com/shopspring/decimal"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	ListActiveByRoles(ctx context.Context, roles []Role) ([]User, error)
	UpdateSalary(ctx context.Context, id string, salaryType SalaryType, amount decimal.Decimal) (User, error)
}
