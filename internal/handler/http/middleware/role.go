package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
	"github.com/cmlabs-hris/leave-portal/internal/handler/http/response"
)

// RequirePermission checks that one of the caller's roles grants permission.
// It must run after AuthRequired.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			if !user.AnyHasPermission(principal.Roles, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user roles are %v", permission, principal.Roles))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
