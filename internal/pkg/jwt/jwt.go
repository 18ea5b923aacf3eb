// Package jwt verifies bearer tokens minted by the external identity provider.
package jwt

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const acceptableSkew = 30 * time.Second

type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	// Subject extracts the verified identity from token claims
	Subject(claims map[string]interface{}) (string, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService verifies HS256 tokens. A non-empty issuer is enforced on every token.
func NewJWTService(secretKey string, issuer string) Service {
	opts := []jwt.ValidateOption{jwt.WithAcceptableSkew(acceptableSkew)}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, opts...),
	}
}

// Subject prefers the standard "sub" claim and falls back to "user_id".
func (j *JWTService) Subject(claims map[string]interface{}) (string, error) {
	for _, key := range []string{jwt.SubjectKey, "user_id"} {
		if v, ok := claims[key].(string); ok && strings.TrimSpace(v) != "" {
			return v, nil
		}
	}
	return "", auth.ErrInvalidToken
}
