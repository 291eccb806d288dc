package postgres

import (
	"context"
	"database/sql"
	"time"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// AnalyticsPostgres is a PostgreSQL implementation of repository.AnalyticsRepository.
// The event table is append-only; every summary below is a single aggregate query.
type AnalyticsPostgres struct {
	db *sql.DB
}

// NewAnalyticsPostgres creates a new AnalyticsPostgres repository.
func NewAnalyticsPostgres(db *sql.DB) *AnalyticsPostgres {
	return &AnalyticsPostgres{db: db}
}

var _ repository.AnalyticsRepository = (*AnalyticsPostgres)(nil)

// Insert appends one event row. occurred_at comes from the database clock.
func (r *AnalyticsPostgres) Insert(ctx context.Context, e *model.AnalyticsEvent) (*model.AnalyticsEvent, error) {
	const q = `
		INSERT INTO document_analytics_events (document_id, link_id, visitor_id, event_type, meta)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, document_id, link_id, visitor_id, event_type, occurred_at, meta
	`
	var meta any
	if len(e.Meta) > 0 {
		meta = []byte(e.Meta)
	}
	row := r.db.QueryRowContext(ctx, q, e.DocumentID, e.LinkID, e.VisitorID, e.EventType, meta)

	var (
		out     model.AnalyticsEvent
		rawMeta []byte
	)
	if err := row.Scan(
		&out.ID,
		&out.DocumentID,
		&out.LinkID,
		&out.VisitorID,
		&out.EventType,
		&out.OccurredAt,
		&rawMeta,
	); err != nil {
		return nil, err
	}
	if len(rawMeta) > 0 {
		out.Meta = rawMeta
	}
	return &out, nil
}

// TotalsForDocument counts events by type and takes the most recent timestamp.
// Counts are row counts, not distinct visitors; repeat visits each count.
func (r *AnalyticsPostgres) TotalsForDocument(ctx context.Context, documentID string, since *time.Time) (*repository.DocumentTotals, error) {
	const q = `
		SELECT
			COUNT(*) FILTER (WHERE event_type = 'VIEW'),
			COUNT(*) FILTER (WHERE event_type = 'DOWNLOAD'),
			MAX(occurred_at)
		FROM document_analytics_events
		WHERE document_id = $1 AND ($2::timestamptz IS NULL OR occurred_at >= $2)
	`
	var t repository.DocumentTotals
	if err := r.db.QueryRowContext(ctx, q, documentID, since).Scan(&t.Views, &t.Downloads, &t.LastAccessed); err != nil {
		return nil, err
	}
	return &t, nil
}

// TotalsForLink is the same computation scoped to one link of the document.
func (r *AnalyticsPostgres) TotalsForLink(ctx context.Context, documentID, linkID string) (*model.LinkAnalytics, error) {
	const q = `
		SELECT
			COUNT(*) FILTER (WHERE event_type = 'VIEW'),
			COUNT(*) FILTER (WHERE event_type = 'DOWNLOAD'),
			MAX(occurred_at) FILTER (WHERE event_type = 'VIEW'),
			MAX(occurred_at) FILTER (WHERE event_type = 'DOWNLOAD')
		FROM document_analytics_events
		WHERE document_id = $1 AND link_id = $2
	`
	var la model.LinkAnalytics
	if err := r.db.QueryRowContext(ctx, q, documentID, linkID).Scan(
		&la.TotalViews,
		&la.TotalDownloads,
		&la.LastViewed,
		&la.LastDownloaded,
	); err != nil {
		return nil, err
	}
	return &la, nil
}

// StatsByLink starts from the link list and left-joins event aggregates onto it,
// so links with zero events still appear with null timestamps.
func (r *AnalyticsPostgres) StatsByLink(ctx context.Context, documentID string) ([]model.LinkStat, error) {
	const q = `
		SELECT l.link_id, l.alias,
			MAX(e.occurred_at) FILTER (WHERE e.event_type = 'VIEW'),
			MAX(e.occurred_at) FILTER (WHERE e.event_type = 'DOWNLOAD')
		FROM document_links l
		LEFT JOIN document_analytics_events e ON e.link_id = l.link_id
		WHERE l.document_id = $1
		GROUP BY l.link_id, l.alias, l.created_at, l.id
		ORDER BY l.created_at DESC, l.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]model.LinkStat, 0)
	for rows.Next() {
		var s model.LinkStat
		if err := rows.Scan(&s.LinkID, &s.Alias, &s.LastViewed, &s.LastDownloaded); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// DailyBuckets groups events into UTC day buckets keyed YYYY-MM-DD, oldest first.
func (r *AnalyticsPostgres) DailyBuckets(ctx context.Context, documentID string, since *time.Time) ([]model.AnalyticsBucket, error) {
	const q = `
		SELECT to_char(date_trunc('day', occurred_at AT TIME ZONE 'UTC'), 'YYYY-MM-DD'),
			COUNT(*) FILTER (WHERE event_type = 'VIEW'),
			COUNT(*) FILTER (WHERE event_type = 'DOWNLOAD')
		FROM document_analytics_events
		WHERE document_id = $1 AND ($2::timestamptz IS NULL OR occurred_at >= $2)
		GROUP BY 1
		ORDER BY 1
	`
	rows, err := r.db.QueryContext(ctx, q, documentID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make([]model.AnalyticsBucket, 0)
	for rows.Next() {
		var b model.AnalyticsBucket
		if err := rows.Scan(&b.Date, &b.Views, &b.Downloads); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buckets, nil
}
