package user

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Role         string           `json:"role"`
	SalaryType   *string          `json:"salary_type,omitempty"`
	SalaryAmount *decimal.Decimal `json:"salary_amount,omitempty"`
	Active       bool             `json:"active"`
	UpdatedAt    string           `json:"updated_at"`
}

func NewUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Active:    u.Active,
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
	if u.SalaryType != nil {
		st := string(*u.SalaryType)
		amount := u.SalaryAmount
		resp.SalaryType = &st
		resp.SalaryAmount = &amount
	}
	return resp
}

// UpdateSalaryRequest sets the salary basis of a user
type UpdateSalaryRequest struct {
	UserID       string          `json:"-"`
	SalaryType   string          `json:"salary_type" validate:"required,oneof=monthly daily"`
	SalaryAmount decimal.Decimal `json:"salary_amount"`
}

func (r *UpdateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if r.SalaryAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary_amount",
			Message: "salary_amount must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
