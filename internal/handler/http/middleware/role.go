package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/relief-experts/attendance-backend-go/internal/domain/admin"
	"github.com/relief-experts/attendance-backend-go/internal/handler/http/response"
)

// RequireRole restricts a route to the given admin roles.
func RequireRole(roles ...admin.Role) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[string(role)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, admin.ErrInvalidToken)
				return
			}

			role, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, admin.ErrInvalidToken)
				return
			}
			if _, ok := allowed[role]; !ok {
				response.Forbidden(w, "Insufficient role for this operation")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
