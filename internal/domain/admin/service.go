package admin

import "context"

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Logout(token string)
	Create(ctx context.Context, req CreateRequest) (Admin, error)
	List(ctx context.Context) ([]Admin, error)
	Update(ctx context.Context, id string, req UpdateRequest) (Admin, error)
	Delete(ctx context.Context, id string) error
}
