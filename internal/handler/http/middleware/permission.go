package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
)

// RequirePermission checks the authenticated profile's role against the permission table
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := user.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, r, err)
				return
			}

			if !caller.Can(permission) {
				response.HandleError(w, r, user.ErrInsufficientPermissions)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
