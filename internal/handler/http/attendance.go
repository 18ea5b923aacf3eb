package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetDailyLog(w http.ResponseWriter, r *http.Request)
	GetMonthlySummary(w http.ResponseWriter, r *http.Request)
	SetOverride(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// GetDailyLog implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetDailyLog(w http.ResponseWriter, r *http.Request) {
	req := attendance.DailyLogRequest{
		UserID: chi.URLParam(r, "userId"),
		Date:   chi.URLParam(r, "date"),
	}

	result, err := h.attendanceService.GetDailyLog(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}

// GetMonthlySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	month, year, err := validator.ParsePeriod(chi.URLParam(r, "month"), chi.URLParam(r, "year"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	req := attendance.MonthlySummaryRequest{
		UserID: chi.URLParam(r, "userId"),
		Month:  month,
		Year:   year,
	}

	result, err := h.attendanceService.GetMonthlySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}

// SetOverride implements AttendanceHandler.
func (h *attendanceHandlerImpl) SetOverride(w http.ResponseWriter, r *http.Request) {
	var req attendance.OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.UserID = chi.URLParam(r, "userId")
	req.Date = chi.URLParam(r, "date")

	result, err := h.attendanceService.SetOverride(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance override saved", result)
}
