package user

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]user.User
	err   error
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ListActiveByRoles(ctx context.Context, roles []user.Role) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) UpdateSalary(ctx context.Context, id string, st user.SalaryType, amount decimal.Decimal) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	u.SalaryType = &st
	u.SalaryAmount = amount
	f.users[id] = u
	return u, nil
}

func newRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]user.User{
		"emp-1":   {ID: "emp-1", Name: "Asha", Role: user.RoleEmployee, Active: true},
		"gone-1":  {ID: "gone-1", Name: "Ravi", Role: user.RoleEmployee, Active: false},
		"admin-1": {ID: "admin-1", Name: "Meera", Role: user.RoleAdmin, Active: true},
	}}
}

func TestGetProfile(t *testing.T) {
	svc := NewUserService(newRepo())

	u, err := svc.GetProfile(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, u.Role)

	for _, id := range []string{"", "missing", "gone-1"} {
		_, err := svc.GetProfile(context.Background(), id)
		assert.ErrorIs(t, err, user.ErrUnknownProfile, id)
	}
}

func TestGetProfile_RepositoryFailure(t *testing.T) {
	repo := newRepo()
	repo.err = errors.New("connection refused")
	svc := NewUserService(repo)

	_, err := svc.GetProfile(context.Background(), "emp-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, user.ErrUnknownProfile)
}

func TestUpdateSalary(t *testing.T) {
	repo := newRepo()
	svc := NewUserService(repo)
	ctx := user.NewContext(context.Background(), repo.users["admin-1"])

	resp, err := svc.UpdateSalary(ctx, user.UpdateSalaryRequest{
		UserID:       "emp-1",
		SalaryType:   "monthly",
		SalaryAmount: decimal.RequireFromString("45000.555"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.SalaryType)
	assert.Equal(t, "monthly", *resp.SalaryType)
	assert.Equal(t, "45000.56", repo.users["emp-1"].SalaryAmount.String())
}

func TestUpdateSalary_Errors(t *testing.T) {
	repo := newRepo()
	svc := NewUserService(repo)
	admin := user.NewContext(context.Background(), repo.users["admin-1"])
	employee := user.NewContext(context.Background(), repo.users["emp-1"])

	_, err := svc.UpdateSalary(employee, user.UpdateSalaryRequest{UserID: "emp-1", SalaryType: "daily", SalaryAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.UpdateSalary(admin, user.UpdateSalaryRequest{UserID: "missing", SalaryType: "daily", SalaryAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = svc.UpdateSalary(admin, user.UpdateSalaryRequest{UserID: "emp-1", SalaryType: "weekly", SalaryAmount: decimal.NewFromInt(1)})
	assert.Error(t, err)
	assert.Nil(t, repo.users["emp-1"].SalaryType)
}
