package mocks

import (
	"context"

	"docshare/internal/model"
	"docshare/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) Metadata(ctx context.Context, linkID string) (*model.PublicLinkMeta, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublicLinkMeta), args.Error(1)
}

func (m *MockAccessService) Access(ctx context.Context, linkID string, creds service.AccessCredentials) (*model.FileAccess, error) {
	args := m.Called(ctx, linkID, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileAccess), args.Error(1)
}
