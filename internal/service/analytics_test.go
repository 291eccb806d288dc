package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docshare/internal/model"
	"docshare/internal/repository"
	repoMocks "docshare/internal/repository/mocks"
)

func TestAnalyticsService_LogEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mEvents := new(repoMocks.MockAnalyticsRepository)
		mEvents.On("Insert", ctx, mock.MatchedBy(func(e *model.AnalyticsEvent) bool {
			return e.DocumentID == "doc-1" && e.EventType == model.EventView
		})).Return(&model.AnalyticsEvent{ID: 1, DocumentID: "doc-1", EventType: model.EventView}, nil)

		svc := NewAnalyticsService(mEvents, nil, nil, "https://docs.example.com")
		ev, err := svc.LogEvent(ctx, LogEventInput{DocumentID: "doc-1", EventType: model.EventView})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), ev.ID)
		mEvents.AssertExpectations(t)
	})

	t.Run("unknown event type", func(t *testing.T) {
		svc := NewAnalyticsService(new(repoMocks.MockAnalyticsRepository), nil, nil, "")
		_, err := svc.LogEvent(ctx, LogEventInput{DocumentID: "doc-1", EventType: "OPENED"})
		assert.ErrorIs(t, err, ErrInvalidEventType)
	})

	t.Run("missing document id", func(t *testing.T) {
		svc := NewAnalyticsService(new(repoMocks.MockAnalyticsRepository), nil, nil, "")
		_, err := svc.LogEvent(ctx, LogEventInput{EventType: model.EventView})
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestAnalyticsService_LogLinkEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("document is resolved from the link, not the caller", func(t *testing.T) {
		mEvents := new(repoMocks.MockAnalyticsRepository)
		mLinks := new(repoMocks.MockLinkRepository)

		mLinks.On("FindByLinkID", ctx, "slug").Return(&model.DocumentLink{
			LinkID:     "slug",
			DocumentID: "doc-1",
		}, nil)
		mEvents.On("Insert", ctx, mock.MatchedBy(func(e *model.AnalyticsEvent) bool {
			return e.DocumentID == "doc-1" && e.LinkID != nil && *e.LinkID == "slug" && e.EventType == model.EventDownload
		})).Return(&model.AnalyticsEvent{ID: 2, DocumentID: "doc-1"}, nil)

		svc := NewAnalyticsService(mEvents, nil, mLinks, "")
		_, err := svc.LogLinkEvent(ctx, "slug", model.EventDownload, nil, nil)

		assert.NoError(t, err)
		mLinks.AssertExpectations(t)
		mEvents.AssertExpectations(t)
	})

	t.Run("unknown slug", func(t *testing.T) {
		mLinks := new(repoMocks.MockLinkRepository)
		mLinks.On("FindByLinkID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := NewAnalyticsService(new(repoMocks.MockAnalyticsRepository), nil, mLinks, "")
		_, err := svc.LogLinkEvent(ctx, "missing", model.EventView, nil, nil)
		assert.ErrorIs(t, err, ErrLinkNotFound)
	})

	t.Run("event type checked before the link lookup", func(t *testing.T) {
		mLinks := new(repoMocks.MockLinkRepository)
		svc := NewAnalyticsService(new(repoMocks.MockAnalyticsRepository), nil, mLinks, "")

		_, err := svc.LogLinkEvent(ctx, "slug", "CLICKED", nil, nil)
		assert.ErrorIs(t, err, ErrInvalidEventType)
		mLinks.AssertNotCalled(t, "FindByLinkID", mock.Anything, mock.Anything)
	})
}

func TestAnalyticsService_DocumentSummary(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	lastAccess := base.Add(-2 * time.Hour)

	t.Run("assembles totals, per-link stats and buckets", func(t *testing.T) {
		mEvents := new(repoMocks.MockAnalyticsRepository)
		mDocs := new(repoMocks.MockDocumentRepository)

		wantSince := base.AddDate(0, 0, -7)
		mDocs.On("FindOwned", ctx, "user-1", "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		mEvents.On("TotalsForDocument", ctx, "doc-1", timeptr(wantSince)).
			Return(&repository.DocumentTotals{Views: 5, Downloads: 2, LastAccessed: &lastAccess}, nil)
		mEvents.On("StatsByLink", ctx, "doc-1").Return([]model.LinkStat{
			{LinkID: "slug-a", LastViewed: &lastAccess},
			{LinkID: "slug-b"},
		}, nil)
		mEvents.On("DailyBuckets", ctx, "doc-1", timeptr(wantSince)).Return([]model.AnalyticsBucket{
			{Date: "2026-03-14", Views: 3, Downloads: 1},
			{Date: "2026-03-15", Views: 2, Downloads: 1},
		}, nil)

		svc := NewAnalyticsService(mEvents, mDocs, nil, "https://docs.example.com").(*analyticsService)
		svc.now = func() time.Time { return base }

		sum, err := svc.DocumentSummary(ctx, "user-1", "doc-1", model.Period7d)

		assert.NoError(t, err)
		assert.Equal(t, 5, sum.TotalViews)
		assert.Equal(t, 2, sum.TotalDownloads)
		assert.Equal(t, &lastAccess, sum.LastAccessed)
		// Zero-event links still appear, and every row gets a derived URL.
		assert.Len(t, sum.LinkStats, 2)
		assert.Equal(t, "https://docs.example.com/documentAccess/slug-a", sum.LinkStats[0].LinkURL)
		assert.Equal(t, "https://docs.example.com/documentAccess/slug-b", sum.LinkStats[1].LinkURL)
		assert.Nil(t, sum.LinkStats[1].LastViewed)
		assert.Len(t, sum.Buckets, 2)
		mEvents.AssertExpectations(t)
	})

	t.Run("all-time period passes no lower bound", func(t *testing.T) {
		mEvents := new(repoMocks.MockAnalyticsRepository)
		mDocs := new(repoMocks.MockDocumentRepository)

		mDocs.On("FindOwned", ctx, "user-1", "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		mEvents.On("TotalsForDocument", ctx, "doc-1", (*time.Time)(nil)).
			Return(&repository.DocumentTotals{}, nil)
		mEvents.On("StatsByLink", ctx, "doc-1").Return([]model.LinkStat{}, nil)
		mEvents.On("DailyBuckets", ctx, "doc-1", (*time.Time)(nil)).
			Return([]model.AnalyticsBucket{}, nil)

		svc := NewAnalyticsService(mEvents, mDocs, nil, "").(*analyticsService)
		svc.now = func() time.Time { return base }

		sum, err := svc.DocumentSummary(ctx, "user-1", "doc-1", model.PeriodAll)

		assert.NoError(t, err)
		assert.Zero(t, sum.TotalViews)
		assert.Nil(t, sum.LastAccessed)
		mEvents.AssertExpectations(t)
	})

	t.Run("not owned", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindOwned", ctx, "user-1", "doc-1").Return(nil, sql.ErrNoRows)

		svc := NewAnalyticsService(new(repoMocks.MockAnalyticsRepository), mDocs, nil, "")
		_, err := svc.DocumentSummary(ctx, "user-1", "doc-1", model.PeriodAll)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAnalyticsService_LinkSummary(t *testing.T) {
	ctx := context.Background()
	seen := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	t.Run("happy path", func(t *testing.T) {
		mEvents := new(repoMocks.MockAnalyticsRepository)
		mDocs := new(repoMocks.MockDocumentRepository)

		mDocs.On("FindOwned", ctx, "user-1", "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		mEvents.On("TotalsForLink", ctx, "doc-1", "slug").Return(&model.LinkAnalytics{
			TotalViews:     4,
			TotalDownloads: 1,
			LastViewed:     &seen,
		}, nil)

		svc := NewAnalyticsService(mEvents, mDocs, nil, "")
		res, err := svc.LinkSummary(ctx, "user-1", "doc-1", "slug")

		assert.NoError(t, err)
		assert.Equal(t, 4, res.TotalViews)
		assert.Equal(t, &seen, res.LastViewed)
	})

	t.Run("not owned", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindOwned", ctx, "user-1", "doc-1").Return(nil, sql.ErrNoRows)

		svc := NewAnalyticsService(new(repoMocks.MockAnalyticsRepository), mDocs, nil, "")
		_, err := svc.LinkSummary(ctx, "user-1", "doc-1", "slug")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
