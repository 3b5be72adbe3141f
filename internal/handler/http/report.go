package http

import (
	"net/http"

	"github.com/relief-experts/attendance-backend-go/internal/domain/report"
	"github.com/relief-experts/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Timesheet(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Timesheet implements ReportHandler. Rows are rebuilt from the raw
// spans on every call; nothing is persisted.
func (h *reportHandlerImpl) Timesheet(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := report.Filter{
		DateFrom: query.Get("date_from"),
		DateTo:   query.Get("date_to"),
	}
	if v := query.Get("center_id"); v != "" {
		filter.CenterID = &v
	}
	if v := query.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}

	rows, summary, err := h.reportService.Reconstruct(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"rows":    rows,
		"summary": summary,
	})
}
