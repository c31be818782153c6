package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"claimflow/internal/claim"
	"claimflow/internal/model"
	"claimflow/internal/repository"
	"claimflow/internal/service"
)

type MockClaimService struct {
	mock.Mock
}

func claimOrNil(args mock.Arguments) (*model.Claim, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Claim), args.Error(1)
}

func claimsOrNil(args mock.Arguments) ([]model.Claim, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Claim), args.Error(1)
}

func (m *MockClaimService) Create(ctx context.Context, p model.Principal, in service.ClaimInput) (*model.Claim, error) {
	return claimOrNil(m.Called(ctx, p, in))
}

func (m *MockClaimService) SubmitNew(ctx context.Context, p model.Principal, in service.ClaimInput) (*model.Claim, error) {
	return claimOrNil(m.Called(ctx, p, in))
}

func (m *MockClaimService) Get(ctx context.Context, p model.Principal, id string) (*model.Claim, error) {
	return claimOrNil(m.Called(ctx, p, id))
}

func (m *MockClaimService) ListMine(ctx context.Context, p model.Principal) ([]model.Claim, error) {
	return claimsOrNil(m.Called(ctx, p))
}

func (m *MockClaimService) Edit(ctx context.Context, p model.Principal, id string, in service.ClaimInput) (*model.Claim, error) {
	return claimOrNil(m.Called(ctx, p, id, in))
}

func (m *MockClaimService) Transition(ctx context.Context, p model.Principal, id string, action claim.Action, remark string) (*model.Claim, error) {
	return claimOrNil(m.Called(ctx, p, id, action, remark))
}

func (m *MockClaimService) Queue(ctx context.Context, p model.Principal) ([]model.Claim, error) {
	return claimsOrNil(m.Called(ctx, p))
}

func (m *MockClaimService) Overview(ctx context.Context, p model.Principal, f repository.ClaimFilter, limit, offset int) (*service.ClaimListResult, error) {
	args := m.Called(ctx, p, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClaimListResult), args.Error(1)
}

func (m *MockClaimService) Quote(ctx context.Context, p model.Principal, in service.ClaimInput) (*service.Quote, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Quote), args.Error(1)
}

func (m *MockClaimService) Report(ctx context.Context, p model.Principal, f service.ReportFilter) ([]model.ClaimReportRow, error) {
	args := m.Called(ctx, p, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClaimReportRow), args.Error(1)
}

func (m *MockClaimService) ReportMonths(ctx context.Context, p model.Principal) ([]string, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
