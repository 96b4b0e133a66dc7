package session

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/BurgerClient_Go/internal/burgerapi"
	"github.com/osse101/BurgerClient_Go/internal/domain"
)

// MockAPI is a mock implementation of API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) User(ctx context.Context) (domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockAPI) Login(ctx context.Context, req burgerapi.LoginRequest) (burgerapi.AuthResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(burgerapi.AuthResponse), args.Error(1)
}

func (m *MockAPI) Register(ctx context.Context, req burgerapi.RegisterRequest) (burgerapi.AuthResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(burgerapi.AuthResponse), args.Error(1)
}

func (m *MockAPI) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAPI) UpdateUser(ctx context.Context, req burgerapi.UpdateUserRequest) (domain.User, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockAPI) ForgotPassword(ctx context.Context, req burgerapi.ForgotPasswordRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAPI) ResetPassword(ctx context.Context, req burgerapi.ResetPasswordRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
