package mocks

import (
	"context"
	"time"

	"docshare/internal/model"
	"docshare/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) Insert(ctx context.Context, e *model.AnalyticsEvent) (*model.AnalyticsEvent, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalyticsEvent), args.Error(1)
}

func (m *MockAnalyticsRepository) TotalsForDocument(ctx context.Context, documentID string, since *time.Time) (*repository.DocumentTotals, error) {
	args := m.Called(ctx, documentID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DocumentTotals), args.Error(1)
}

func (m *MockAnalyticsRepository) TotalsForLink(ctx context.Context, documentID, linkID string) (*model.LinkAnalytics, error) {
	args := m.Called(ctx, documentID, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LinkAnalytics), args.Error(1)
}

func (m *MockAnalyticsRepository) StatsByLink(ctx context.Context, documentID string) ([]model.LinkStat, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LinkStat), args.Error(1)
}

func (m *MockAnalyticsRepository) DailyBuckets(ctx context.Context, documentID string, since *time.Time) ([]model.AnalyticsBucket, error) {
	args := m.Called(ctx, documentID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AnalyticsBucket), args.Error(1)
}
