package center

import (
	"context"

	"github.com/google/uuid"
	"github.com/relief-experts/attendance-backend-go/internal/domain/center"
)

type CenterService struct {
	centers center.Repository
}

func NewCenterService(centers center.Repository) center.Service {
	return &CenterService{centers: centers}
}

// Create implements center.Service.
func (s *CenterService) Create(ctx context.Context, req center.UpsertRequest) (center.Center, error) {
	if err := req.Validate(); err != nil {
		return center.Center{}, err
	}
	return s.centers.Create(ctx, fromRequest(uuid.NewString(), req))
}

// GetByID implements center.Service.
func (s *CenterService) GetByID(ctx context.Context, id string) (center.Center, error) {
	return s.centers.GetByID(ctx, id)
}

// List implements center.Service.
func (s *CenterService) List(ctx context.Context, activeOnly bool) ([]center.Center, error) {
	return s.centers.List(ctx, activeOnly)
}

// Update implements center.Service.
func (s *CenterService) Update(ctx context.Context, id string, req center.UpsertRequest) (center.Center, error) {
	if err := req.Validate(); err != nil {
		return center.Center{}, err
	}
	c := fromRequest(id, req)
	if err := s.centers.Update(ctx, c); err != nil {
		return center.Center{}, err
	}
	return s.centers.GetByID(ctx, id)
}

// Delete implements center.Service.
func (s *CenterService) Delete(ctx context.Context, id string) error {
	return s.centers.Delete(ctx, id)
}

func fromRequest(id string, req center.UpsertRequest) center.Center {
	return center.Center{
		ID:                id,
		Name:              req.Name,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		CheckInGrace:      req.CheckInGrace,
		CheckOutGrace:     req.CheckOutGrace,
		AuthorizedNetwork: req.AuthorizedNetwork,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		RadiusMeters:      req.RadiusMeters,
		IsActive:          req.IsActive,
		WorkingDays:       req.WorkingDays,
	}
}
