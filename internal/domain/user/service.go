package user

import "context"

type UserService interface {
	// GetProfile resolves a verified identity to its profile. Missing or inactive profiles are ErrUnknownProfile.
	GetProfile(ctx context.Context, id string) (User, error)

	// UpdateSalary sets the salary basis used by payroll generation
	UpdateSalary(ctx context.Context, req UpdateSalaryRequest) (UserResponse, error)
}
