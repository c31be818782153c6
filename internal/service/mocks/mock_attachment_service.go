package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"claimflow/internal/model"
)

type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) Upload(ctx context.Context, p model.Principal, claimID string, r io.Reader, fileName, contentType string, size int64) (*model.Document, error) {
	args := m.Called(ctx, p, claimID, r, fileName, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockAttachmentService) List(ctx context.Context, p model.Principal, claimID string) ([]model.Document, error) {
	args := m.Called(ctx, p, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockAttachmentService) Open(ctx context.Context, p model.Principal, docID string) (io.ReadCloser, *model.Document, error) {
	args := m.Called(ctx, p, docID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.Document), args.Error(2)
}

func (m *MockAttachmentService) Link(ctx context.Context, p model.Principal, docID string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, p, docID, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockAttachmentService) Delete(ctx context.Context, p model.Principal, docID string) error {
	args := m.Called(ctx, p, docID)
	return args.Error(0)
}
