package mocks

import (
	"context"

	"docshare/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) CreateOwned(ctx context.Context, ownerID string, link *model.DocumentLink) (*model.DocumentLink, error) {
	args := m.Called(ctx, ownerID, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentLink), args.Error(1)
}

func (m *MockLinkRepository) FindByLinkID(ctx context.Context, linkID string) (*model.DocumentLink, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentLink), args.Error(1)
}

func (m *MockLinkRepository) FindWithDocument(ctx context.Context, linkID string) (*model.DocumentLink, *model.Document, error) {
	args := m.Called(ctx, linkID)
	var (
		link *model.DocumentLink
		doc  *model.Document
	)
	if args.Get(0) != nil {
		link = args.Get(0).(*model.DocumentLink)
	}
	if args.Get(1) != nil {
		doc = args.Get(1).(*model.Document)
	}
	return link, doc, args.Error(2)
}

func (m *MockLinkRepository) ListByDocument(ctx context.Context, documentID string) ([]model.DocumentLink, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentLink), args.Error(1)
}

func (m *MockLinkRepository) DeleteOwned(ctx context.Context, ownerID, linkID string) error {
	args := m.Called(ctx, ownerID, linkID)
	return args.Error(0)
}
