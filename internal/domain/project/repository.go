package project

import "context"

type Repository interface {
	Create(ctx context.Context, p Project) (Project, error)
	GetByID(ctx context.Context, id string) (Project, error)
	List(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, p Project) error
	SoftDelete(ctx context.Context, id string) error
}
