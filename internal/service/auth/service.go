package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/relief-experts/attendance-backend-go/internal/domain/admin"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	admins admin.Repository
	jwt    jwt.Service
}

func NewAuthService(admins admin.Repository, jwtService jwt.Service) admin.Service {
	return &AuthService{admins: admins, jwt: jwtService}
}

// Login implements admin.Service. Lookup failures and bad passwords
// collapse into the same error so usernames cannot be probed.
func (s *AuthService) Login(ctx context.Context, req admin.LoginRequest) (admin.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return admin.LoginResponse{}, err
	}

	a, err := s.admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, admin.ErrAdminNotFound) {
			return admin.LoginResponse{}, admin.ErrInvalidCredentials
		}
		return admin.LoginResponse{}, fmt.Errorf("failed to load admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return admin.LoginResponse{}, admin.ErrInvalidCredentials
	}
	if a.IsBlocked {
		return admin.LoginResponse{}, admin.ErrAdminBlocked
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(a.ID, a.Username, a.Role, a.ManagedCenterIDs)
	if err != nil {
		return admin.LoginResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return admin.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Name:      a.Name,
		Role:      a.Role,
	}, nil
}

// Logout implements admin.Service.
func (s *AuthService) Logout(token string) {
	s.jwt.RevokeToken(token)
}

// Create implements admin.Service.
func (s *AuthService) Create(ctx context.Context, req admin.CreateRequest) (admin.Admin, error) {
	if err := req.Validate(); err != nil {
		return admin.Admin{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return admin.Admin{}, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.admins.Create(ctx, admin.Admin{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Username:         req.Username,
		PasswordHash:     string(hash),
		Role:             admin.Role(req.Role),
		ManagedCenterIDs: req.ManagedCenterIDs,
	})
}

// List implements admin.Service.
func (s *AuthService) List(ctx context.Context) ([]admin.Admin, error) {
	admins, err := s.admins.List(ctx)
	if err != nil {
		return nil, err
	}
	// Hashes stay server-side.
	for i := range admins {
		admins[i].PasswordHash = ""
	}
	return admins, nil
}

// Update implements admin.Service.
func (s *AuthService) Update(ctx context.Context, id string, req admin.UpdateRequest) (admin.Admin, error) {
	if err := req.Validate(); err != nil {
		return admin.Admin{}, err
	}

	existing, err := s.getByID(ctx, id)
	if err != nil {
		return admin.Admin{}, err
	}

	existing.Name = req.Name
	existing.Username = req.Username
	existing.Role = admin.Role(req.Role)
	existing.ManagedCenterIDs = req.ManagedCenterIDs
	existing.IsBlocked = req.IsBlocked
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return admin.Admin{}, fmt.Errorf("failed to hash password: %w", err)
		}
		existing.PasswordHash = string(hash)
	}

	if err := s.admins.Update(ctx, existing); err != nil {
		return admin.Admin{}, err
	}
	existing.PasswordHash = ""
	return existing, nil
}

// Delete implements admin.Service.
func (s *AuthService) Delete(ctx context.Context, id string) error {
	return s.admins.Delete(ctx, id)
}

func (s *AuthService) getByID(ctx context.Context, id string) (admin.Admin, error) {
	admins, err := s.admins.List(ctx)
	if err != nil {
		return admin.Admin{}, err
	}
	for _, a := range admins {
		if a.ID == id {
			return a, nil
		}
	}
	return admin.Admin{}, admin.ErrAdminNotFound
}
