package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/relief-experts/attendance-backend-go/internal/domain/attendance"
	"github.com/relief-experts/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.Filter{}
	query := r.URL.Query()

	if v := query.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := query.Get("center_id"); v != "" {
		filter.CenterID = &v
	}
	if v := query.Get("date_from"); v != "" {
		filter.DateFrom = &v
	}
	if v := query.Get("date_to"); v != "" {
		filter.DateTo = &v
	}
	if v := query.Get("status"); v != "" {
		status := attendance.Status(v)
		filter.Status = &status
	}

	records, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted", nil)
}
