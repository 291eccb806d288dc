package mocks

import (
	"context"

	"docshare/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockVisitorRepository struct {
	mock.Mock
}

func (m *MockVisitorRepository) Create(ctx context.Context, v *model.DocumentLinkVisitor) (*model.DocumentLinkVisitor, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentLinkVisitor), args.Error(1)
}

func (m *MockVisitorRepository) ListByDocument(ctx context.Context, documentID string) ([]model.DocumentLinkVisitor, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentLinkVisitor), args.Error(1)
}
