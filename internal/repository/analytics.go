package repository

import (
	"context"
	"time"

	"docshare/internal/model"
)

// DocumentTotals carries the aggregate columns for one document's event log.
type DocumentTotals struct {
	Views        int
	Downloads    int
	LastAccessed *time.Time
}

// AnalyticsRepository defines data access for the append-only analytics event log.
// All summary values are derived by aggregation at read time; nothing is stored.
type AnalyticsRepository interface {
	// Insert appends one event row and returns it with its generated ID and timestamp.
	Insert(ctx context.Context, e *model.AnalyticsEvent) (*model.AnalyticsEvent, error)

	// TotalsForDocument aggregates event counts by type and the most recent
	// timestamp across all of a document's events. A nil since means all time.
	TotalsForDocument(ctx context.Context, documentID string, since *time.Time) (*DocumentTotals, error)

	// TotalsForLink aggregates counts and last-seen timestamps per event type
	// for one link of a document.
	TotalsForLink(ctx context.Context, documentID, linkID string) (*model.LinkAnalytics, error)

	// StatsByLink returns one row per link of the document with the most recent
	// VIEW and DOWNLOAD timestamps. Links with no events appear with nil
	// timestamps: the query starts from the link list and left-joins event
	// aggregates onto it.
	StatsByLink(ctx context.Context, documentID string) ([]model.LinkStat, error)

	// DailyBuckets groups the document's events into UTC day buckets,
	// oldest first. Days with no events are omitted.
	DailyBuckets(ctx context.Context, documentID string, since *time.Time) ([]model.AnalyticsBucket, error)
}
