package http

import (
	"encoding/json"
	"net/http"

	"github.com/relief-experts/attendance-backend-go/internal/domain/attendance"
	"github.com/relief-experts/attendance-backend-go/internal/domain/notification"
	"github.com/relief-experts/attendance-backend-go/internal/handler/http/response"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/geoclock"
	"github.com/relief-experts/attendance-backend-go/internal/service/master"
)

// PortalHandler serves the public attendance portal: check-in and
// check-out attempts, the derived clock state, broadcasts and portal
// branding. No admin token is involved; the gate itself authenticates
// attempts through device binding.
type PortalHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	State(w http.ResponseWriter, r *http.Request)
	Notifications(w http.ResponseWriter, r *http.Request)
	Settings(w http.ResponseWriter, r *http.Request)
	Time(w http.ResponseWriter, r *http.Request)
}

type portalHandlerImpl struct {
	gate          attendance.Service
	notifications notification.Service
	master        master.Service
	clock         *geoclock.Clock
}

func NewPortalHandler(gate attendance.Service, notifications notification.Service, masterService master.Service, clock *geoclock.Clock) PortalHandler {
	return &portalHandlerImpl{
		gate:          gate,
		notifications: notifications,
		master:        masterService,
		clock:         clock,
	}
}

// CheckIn implements PortalHandler.
func (h *portalHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.gate.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// CheckOut implements PortalHandler.
func (h *portalHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.gate.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// State implements PortalHandler.
func (h *portalHandlerImpl) State(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	state, err := h.gate.CurrentState(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{"state": state})
}

// Notifications implements PortalHandler.
func (h *portalHandlerImpl) Notifications(w http.ResponseWriter, r *http.Request) {
	centerID := r.URL.Query().Get("center_id")
	employeeID := r.URL.Query().Get("employee_id")

	notifications, err := h.notifications.ListForTarget(r.Context(), centerID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notifications)
}

// Settings implements PortalHandler.
func (h *portalHandlerImpl) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.master.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings)
}

// Time implements PortalHandler. Exposes the synchronized clock so the
// portal UI can display server time rather than trusting the device.
func (h *portalHandlerImpl) Time(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{
		"now":       h.clock.Now(),
		"synced":    h.clock.Synced(),
		"offset_ms": h.clock.Offset().Milliseconds(),
	})
}
