package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUnknownProfile          = errors.New("no user profile for authenticated identity")
	ErrInactiveUser            = errors.New("user is inactive")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrNoUserInContext         = errors.New("no authenticated user in context")
)
