package center

import "context"

type Repository interface {
	Create(ctx context.Context, c Center) (Center, error)
	GetByID(ctx context.Context, id string) (Center, error)
	// GetByAuthorizedNetwork resolves the active center bound to a
	// caller's network identifier, or ErrCenterNotFound.
	GetByAuthorizedNetwork(ctx context.Context, networkID string) (Center, error)
	List(ctx context.Context, activeOnly bool) ([]Center, error)
	Update(ctx context.Context, c Center) error
	Delete(ctx context.Context, id string) error
}

type Service interface {
	Create(ctx context.Context, req UpsertRequest) (Center, error)
	GetByID(ctx context.Context, id string) (Center, error)
	List(ctx context.Context, activeOnly bool) ([]Center, error)
	Update(ctx context.Context, id string, req UpsertRequest) (Center, error)
	Delete(ctx context.Context, id string) error
}
