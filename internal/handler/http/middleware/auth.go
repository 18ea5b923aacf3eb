package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// ProfileLoader resolves a verified identity to the stored profile.
type ProfileLoader interface {
	GetProfile(ctx context.Context, id string) (user.User, error)
}

// Authenticate runs after jwtauth.Verifier. It takes the subject of the verified token, loads the
// profile and stores it in the request context. Roles come from the profile, never from claims.
func Authenticate(jwtService jwt.Service, profiles ProfileLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, r, tokenError(err))
				return
			}
			if token == nil {
				response.HandleError(w, r, auth.ErrInvalidToken)
				return
			}

			subject, err := jwtService.Subject(claims)
			if err != nil {
				response.HandleError(w, r, err)
				return
			}

			profile, err := profiles.GetProfile(r.Context(), subject)
			if err != nil {
				if errors.Is(err, user.ErrUnknownProfile) {
					slog.WarnContext(r.Context(), "Token subject has no active profile", "subject", subject)
				}
				response.HandleError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(user.NewContext(r.Context(), profile)))
		}
		return http.HandlerFunc(hfn)
	}
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, jwtauth.ErrNoTokenFound):
		return auth.ErrMissingToken
	case errors.Is(err, jwtauth.ErrExpired):
		return auth.ErrTokenExpired
	default:
		return auth.ErrInvalidToken
	}
}
