package user

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying the authenticated user's profile.
func NewContext(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the profile stored by NewContext.
func FromContext(ctx context.Context) (User, error) {
	u, ok := ctx.Value(contextKey{}).(User)
	if !ok {
		return User{}, ErrNoUserInContext
	}
	return u, nil
}
