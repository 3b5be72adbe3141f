package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/relief-experts/attendance-backend-go/internal/domain/admin"
	"github.com/relief-experts/attendance-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	CreateAdmin(w http.ResponseWriter, r *http.Request)
	ListAdmins(w http.ResponseWriter, r *http.Request)
	UpdateAdmin(w http.ResponseWriter, r *http.Request)
	DeleteAdmin(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService admin.Service
}

func NewAuthHandler(authService admin.Service) AuthHandler {
	return &authHandlerImpl{authService: authService}
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req admin.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Logout implements AuthHandler.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if token := jwtauth.TokenFromHeader(r); token != "" {
		h.authService.Logout(token)
	}
	response.SuccessWithMessage(w, "Logged out", nil)
}

// CreateAdmin implements AuthHandler.
func (h *authHandlerImpl) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req admin.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.authService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	created.PasswordHash = ""

	response.Created(w, "Admin created", created)
}

// ListAdmins implements AuthHandler.
func (h *authHandlerImpl) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.authService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, admins)
}

// UpdateAdmin implements AuthHandler.
func (h *authHandlerImpl) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req admin.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.authService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Admin updated", updated)
}

// DeleteAdmin implements AuthHandler.
func (h *authHandlerImpl) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.authService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Admin deleted", nil)
}
