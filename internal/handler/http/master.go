package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/relief-experts/attendance-backend-go/internal/domain/project"
	"github.com/relief-experts/attendance-backend-go/internal/domain/settings"
	"github.com/relief-experts/attendance-backend-go/internal/handler/http/response"
	"github.com/relief-experts/attendance-backend-go/internal/service/master"
)

type MasterHandler interface {
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)

	CreateProject(w http.ResponseWriter, r *http.Request)
	ListProjects(w http.ResponseWriter, r *http.Request)
	UpdateProject(w http.ResponseWriter, r *http.Request)
	DeleteProject(w http.ResponseWriter, r *http.Request)

	ListTemplates(w http.ResponseWriter, r *http.Request)
	UpsertTemplate(w http.ResponseWriter, r *http.Request)

	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.Service
}

func NewMasterHandler(masterService master.Service) MasterHandler {
	return &masterHandlerImpl{masterService: masterService}
}

type holidayRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// CreateHoliday implements MasterHandler.
func (h *masterHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req holidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateHoliday(r.Context(), req.Name, req.Date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", created)
}

// ListHolidays implements MasterHandler.
func (h *masterHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.masterService.ListHolidays(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}

// DeleteHoliday implements MasterHandler.
func (h *masterHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", nil)
}

type projectRequest struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
}

// CreateProject implements MasterHandler.
func (h *masterHandlerImpl) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateProject(r.Context(), req.Name, req.Code, req.Description)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Project created", created)
}

// ListProjects implements MasterHandler.
func (h *masterHandlerImpl) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.masterService.ListProjects(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, projects)
}

// UpdateProject implements MasterHandler.
func (h *masterHandlerImpl) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	p := project.Project{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	if err := h.masterService.UpdateProject(r.Context(), p); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Project updated", p)
}

// DeleteProject implements MasterHandler.
func (h *masterHandlerImpl) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Project deleted", nil)
}

// ListTemplates implements MasterHandler.
func (h *masterHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.masterService.ListTemplates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, templates)
}

type templateRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// UpsertTemplate implements MasterHandler.
func (h *masterHandlerImpl) UpsertTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	saved, err := h.masterService.UpsertTemplate(r.Context(), req.Type, req.Content)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Template saved", saved)
}

// GetSettings implements MasterHandler.
func (h *masterHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.masterService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, s)
}

// UpdateSettings implements MasterHandler.
func (h *masterHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settings.SystemSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	saved, err := h.masterService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated", saved)
}
