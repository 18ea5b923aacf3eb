package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type CalendarHandler interface {
	GetWorkingDays(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	GetSaturdayOff(w http.ResponseWriter, r *http.Request)
	SetSaturdayOff(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{calendarService: calendarService}
}

// GetWorkingDays implements CalendarHandler.
func (h *calendarHandlerImpl) GetWorkingDays(w http.ResponseWriter, r *http.Request) {
	month, year, err := validator.ParsePeriod(chi.URLParam(r, "month"), chi.URLParam(r, "year"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	result, err := h.calendarService.ComputeWorkingDays(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, calendar.NewWorkingDaysResponse(result))
}

// ListHolidays implements CalendarHandler.
func (h *calendarHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < validator.MinYear || year > validator.MaxYear {
		response.HandleError(w, r, validator.New("year", "year is out of range"))
		return
	}

	result, err := h.calendarService.ListHolidays(r.Context(), year)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}

// GetSaturdayOff implements CalendarHandler.
func (h *calendarHandlerImpl) GetSaturdayOff(w http.ResponseWriter, r *http.Request) {
	month, year, err := validator.ParsePeriod(chi.URLParam(r, "month"), chi.URLParam(r, "year"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	result, err := h.calendarService.GetSaturdayOff(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}

// SetSaturdayOff implements CalendarHandler.
func (h *calendarHandlerImpl) SetSaturdayOff(w http.ResponseWriter, r *http.Request) {
	month, year, err := validator.ParsePeriod(chi.URLParam(r, "month"), chi.URLParam(r, "year"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	var req calendar.SaturdayOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Month = month
	req.Year = year

	result, err := h.calendarService.SetSaturdayOff(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Saturday-off list saved", result)
}
