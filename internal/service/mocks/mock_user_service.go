package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"claimflow/internal/model"
	"claimflow/internal/service"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Resolve(ctx context.Context, userID string) (model.Principal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Principal), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, p model.Principal, limit, offset int) (*service.UserListResult, error) {
	args := m.Called(ctx, p, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserListResult), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, p model.Principal, in service.NewUser) (*model.User, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) SetRate(ctx context.Context, p model.Principal, userID string, rate decimal.Decimal) error {
	args := m.Called(ctx, p, userID, rate)
	return args.Error(0)
}
