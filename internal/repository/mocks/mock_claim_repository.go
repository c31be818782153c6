package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"claimflow/internal/model"
	"claimflow/internal/repository"
)

type MockClaimRepository struct {
	mock.Mock
}

func (m *MockClaimRepository) claim(args mock.Arguments) (*model.Claim, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Claim), args.Error(1)
}

func (m *MockClaimRepository) claims(args mock.Arguments) ([]model.Claim, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Claim), args.Error(1)
}

func (m *MockClaimRepository) Create(ctx context.Context, c *model.Claim) (*model.Claim, error) {
	return m.claim(m.Called(ctx, c))
}

func (m *MockClaimRepository) FindByID(ctx context.Context, id string) (*model.Claim, error) {
	return m.claim(m.Called(ctx, id))
}

func (m *MockClaimRepository) FindByContractorMonth(ctx context.Context, contractorID, monthKey string) (*model.Claim, error) {
	return m.claim(m.Called(ctx, contractorID, monthKey))
}

func (m *MockClaimRepository) ListByContractor(ctx context.Context, contractorID string) ([]model.Claim, error) {
	return m.claims(m.Called(ctx, contractorID))
}

func (m *MockClaimRepository) ListByStatus(ctx context.Context, status model.ClaimStatus) ([]model.Claim, error) {
	return m.claims(m.Called(ctx, status))
}

func (m *MockClaimRepository) List(ctx context.Context, f repository.ClaimFilter, pq repository.PageQuery) (*repository.PageResult[model.Claim], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Claim]), args.Error(1)
}

func (m *MockClaimRepository) Update(ctx context.Context, c *model.Claim) (*model.Claim, error) {
	return m.claim(m.Called(ctx, c))
}

func (m *MockClaimRepository) Report(ctx context.Context, f repository.ClaimFilter) ([]model.ClaimReportRow, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClaimReportRow), args.Error(1)
}

func (m *MockClaimRepository) ReportMonths(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
