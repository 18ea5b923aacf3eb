package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	ListPending(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{overtimeService: overtimeService}
}

// ListPending implements OvertimeHandler.
func (h *overtimeHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}

// Review implements OvertimeHandler.
func (h *overtimeHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	var req overtime.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.RecordID = chi.URLParam(r, "recordId")

	result, err := h.overtimeService.Review(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime reviewed", result)
}
