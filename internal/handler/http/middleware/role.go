package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/jwt"
)

// RequireRole allows the request only when the token's role is one of roles
func RequireRole(roles ...employee.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwt.ClaimsFromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.HandleError(w, employee.ErrAdminPrivilegeRequired)
		})
	}
}

// AdminOnly requires the ADMIN role
func AdminOnly(next http.Handler) http.Handler {
	return RequireRole(employee.RoleAdmin)(next)
}
