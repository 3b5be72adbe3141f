package admin

import "context"

type Repository interface {
	Create(ctx context.Context, a Admin) (Admin, error)
	GetByUsername(ctx context.Context, username string) (Admin, error)
	List(ctx context.Context) ([]Admin, error)
	Update(ctx context.Context, a Admin) error
	Delete(ctx context.Context, id string) error
}
