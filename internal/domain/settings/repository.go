package settings

import "context"

type Repository interface {
	Get(ctx context.Context) (SystemSettings, error)
	Update(ctx context.Context, s SystemSettings) (SystemSettings, error)
}
