package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/relief-experts/attendance-backend-go/internal/domain/center"
	"github.com/relief-experts/attendance-backend-go/internal/handler/http/response"
)

type CenterHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type centerHandlerImpl struct {
	centerService center.Service
}

func NewCenterHandler(centerService center.Service) CenterHandler {
	return &centerHandlerImpl{centerService: centerService}
}

// Create implements CenterHandler.
func (h *centerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req center.UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.centerService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Center created", created)
}

// Get implements CenterHandler.
func (h *centerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.centerService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, c)
}

// List implements CenterHandler.
func (h *centerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	centers, err := h.centerService.List(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, centers)
}

// Update implements CenterHandler.
func (h *centerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req center.UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.centerService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Center updated", updated)
}

// Delete implements CenterHandler.
func (h *centerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.centerService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Center deleted", nil)
}
