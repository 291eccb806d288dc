package mocks

import (
	"context"

	"docshare/internal/model"
	"docshare/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockLinkService struct {
	mock.Mock
}

func (m *MockLinkService) Create(ctx context.Context, ownerID, documentID string, opts service.CreateLinkOptions) (*model.DocumentLink, error) {
	args := m.Called(ctx, ownerID, documentID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentLink), args.Error(1)
}

func (m *MockLinkService) ListForDocument(ctx context.Context, ownerID, documentID string) ([]model.DocumentLink, error) {
	args := m.Called(ctx, ownerID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentLink), args.Error(1)
}

func (m *MockLinkService) Delete(ctx context.Context, ownerID, linkID string) error {
	args := m.Called(ctx, ownerID, linkID)
	return args.Error(0)
}
