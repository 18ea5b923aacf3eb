package overtime

import (
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ReviewRequest resolves a pending overtime record
type ReviewRequest struct {
	RecordID string   `json:"-"`
	Decision Decision `json:"decision" validate:"required,oneof=approve reject"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RecordID) {
		errs = append(errs, validator.ValidationError{Field: "record_id", Message: "record_id is required"})
	}

	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Status maps the decision to the terminal overtime status.
func (d Decision) Status() attendance.OvertimeStatus {
	if d == DecisionApprove {
		return attendance.OvertimeApproved
	}
	return attendance.OvertimeRejected
}
