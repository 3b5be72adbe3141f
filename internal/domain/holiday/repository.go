package holiday

import "context"

type Repository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	List(ctx context.Context) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
}
