package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
)

var _ user.UserService = (*UserServiceImpl)(nil)

type UserServiceImpl struct {
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context, id string) (user.User, error) {
	if id == "" {
		return user.User{}, user.ErrUnknownProfile
	}

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, user.ErrUnknownProfile
		}
		return user.User{}, fmt.Errorf("failed to load user profile: %w", err)
	}
	if !u.Active {
		slog.Warn("Inactive user presented a valid token", "user_id", id)
		return user.User{}, user.ErrUnknownProfile
	}
	return u, nil
}

// UpdateSalary implements user.UserService.
func (s *UserServiceImpl) UpdateSalary(ctx context.Context, req user.UpdateSalaryRequest) (user.UserResponse, error) {
	caller, err := user.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if !caller.Can(user.PermissionSalaryManage) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.userRepo.UpdateSalary(ctx, req.UserID, user.SalaryType(req.SalaryType), req.SalaryAmount.Round(2))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to update salary: %w", err)
	}

	slog.Info("Salary updated", "user_id", updated.ID, "salary_type", req.SalaryType, "updated_by", caller.ID)
	return user.NewUserResponse(updated), nil
}
