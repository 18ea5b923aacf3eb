package payroll

import (
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// GenerateRequest selects the payroll period
type GenerateRequest struct {
	Month int `json:"month" validate:"required,min=1,max=12"`
	Year  int `json:"year" validate:"required,min=2000,max=2100"`
}

func (r *GenerateRequest) Validate() error {
	return validator.Struct(r)
}

type PayrollRecordResponse struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	UserName         *string         `json:"user_name,omitempty"`
	UserEmail        *string         `json:"user_email,omitempty"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	PresentDays      int             `json:"present_days"`
	TotalWorkingDays int             `json:"total_working_days"`
	SalaryType       string          `json:"salary_type"`
	SalaryAmount     decimal.Decimal `json:"salary_amount"`
	SalaryPaid       decimal.Decimal `json:"salary_paid"`
	Status           string          `json:"status"`
	GeneratedAt      string          `json:"generated_at"`
	PaidAt           *string         `json:"paid_at,omitempty"`
	PaidBy           *string         `json:"paid_by,omitempty"`
}

func NewPayrollRecordResponse(r PayrollRecord) PayrollRecordResponse {
	resp := PayrollRecordResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		UserName:         r.UserName,
		UserEmail:        r.UserEmail,
		Month:            r.Month,
		Year:             r.Year,
		PresentDays:      r.PresentDays,
		TotalWorkingDays: r.TotalWorkingDays,
		SalaryType:       string(r.SalaryType),
		SalaryAmount:     r.SalaryAmount,
		SalaryPaid:       r.SalaryPaid,
		Status:           string(r.Status),
		GeneratedAt:      r.GeneratedAt.Format(time.RFC3339),
		PaidBy:           r.PaidBy,
	}
	if r.PaidAt != nil {
		s := r.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &s
	}
	return resp
}

type SkippedUser struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

type GenerateResponse struct {
	Month            int                     `json:"month"`
	Year             int                     `json:"year"`
	TotalWorkingDays int                     `json:"total_working_days"`
	Generated        int                     `json:"generated"`
	Records          []PayrollRecordResponse `json:"records"`
	Skipped          []SkippedUser           `json:"skipped,omitempty"`
}

type ListPayrollResponse struct {
	Month     int                     `json:"month"`
	Year      int                     `json:"year"`
	TotalPaid decimal.Decimal         `json:"total_paid"`
	Records   []PayrollRecordResponse `json:"records"`
}

// ExportFile is a rendered download
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
