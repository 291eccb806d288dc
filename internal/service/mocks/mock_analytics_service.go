package mocks

import (
	"context"
	"encoding/json"

	"docshare/internal/model"
	"docshare/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) LogEvent(ctx context.Context, in service.LogEventInput) (*model.AnalyticsEvent, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalyticsEvent), args.Error(1)
}

func (m *MockAnalyticsService) LogLinkEvent(ctx context.Context, linkID string, eventType model.AnalyticsEventType, visitorID *int64, meta json.RawMessage) (*model.AnalyticsEvent, error) {
	args := m.Called(ctx, linkID, eventType, visitorID, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalyticsEvent), args.Error(1)
}

func (m *MockAnalyticsService) DocumentSummary(ctx context.Context, ownerID, documentID string, period model.AnalyticsPeriod) (*model.DocumentAnalytics, error) {
	args := m.Called(ctx, ownerID, documentID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentAnalytics), args.Error(1)
}

func (m *MockAnalyticsService) LinkSummary(ctx context.Context, ownerID, documentID, linkID string) (*model.LinkAnalytics, error) {
	args := m.Called(ctx, ownerID, documentID, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LinkAnalytics), args.Error(1)
}
