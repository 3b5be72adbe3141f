package template

import "context"

type Repository interface {
	GetByType(ctx context.Context, templateType string) (MessageTemplate, error)
	List(ctx context.Context) ([]MessageTemplate, error)
	Upsert(ctx context.Context, t MessageTemplate) (MessageTemplate, error)
}
