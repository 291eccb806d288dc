package service

import (
	"context"
	"encoding/json"
	"time"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// LogEventInput carries one usage fact to append to the event log. LinkID and
// VisitorID are optional; an event may exist without either.
type LogEventInput struct {
	DocumentID string
	LinkID     *string
	VisitorID  *int64
	EventType  model.AnalyticsEventType
	Meta       json.RawMessage
}

// AnalyticsService appends usage events and derives summaries from them.
// Summaries are computed at read time from the append-only event log; no
// counter is ever stored, so concurrent writers cannot lose updates.
type AnalyticsService interface {
	// LogEvent appends one immutable event row.
	LogEvent(ctx context.Context, in LogEventInput) (*model.AnalyticsEvent, error)

	// LogLinkEvent appends an event presented by a visitor against a link slug.
	// The owning document is resolved from the link, never trusted from the
	// caller. An unknown slug reports ErrLinkNotFound.
	LogLinkEvent(ctx context.Context, linkID string, eventType model.AnalyticsEventType, visitorID *int64, meta json.RawMessage) (*model.AnalyticsEvent, error)

	// DocumentSummary aggregates an owned document's events: totals by type,
	// most recent access, per-link recency (links with zero events included),
	// and a daily time series for the requested period.
	DocumentSummary(ctx context.Context, ownerID, documentID string, period model.AnalyticsPeriod) (*model.DocumentAnalytics, error)

	// LinkSummary is the totals/last-timestamp computation scoped to one link
	// of an owned document.
	LinkSummary(ctx context.Context, ownerID, documentID, linkID string) (*model.LinkAnalytics, error)
}

type analyticsService struct {
	events  repository.AnalyticsRepository
	docs    repository.DocumentRepository
	links   repository.LinkRepository
	baseURL string
	now     func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService. baseURL is used to fill
// derived link URLs on per-link stats.
func NewAnalyticsService(events repository.AnalyticsRepository, docs repository.DocumentRepository, links repository.LinkRepository, baseURL string) AnalyticsService {
	return &analyticsService{
		events:  events,
		docs:    docs,
		links:   links,
		baseURL: baseURL,
		now:     time.Now,
	}
}

func (s *analyticsService) LogEvent(ctx context.Context, in LogEventInput) (*model.AnalyticsEvent, error) {
	if in.DocumentID == "" {
		return nil, ErrIDRequired
	}
	if !in.EventType.Valid() {
		return nil, ErrInvalidEventType
	}
	return s.events.Insert(ctx, &model.AnalyticsEvent{
		DocumentID: in.DocumentID,
		LinkID:     in.LinkID,
		VisitorID:  in.VisitorID,
		EventType:  in.EventType,
		Meta:       in.Meta,
	})
}

func (s *analyticsService) LogLinkEvent(ctx context.Context, linkID string, eventType model.AnalyticsEventType, visitorID *int64, meta json.RawMessage) (*model.AnalyticsEvent, error) {
	if linkID == "" {
		return nil, ErrIDRequired
	}
	if !eventType.Valid() {
		return nil, ErrInvalidEventType
	}
	link, err := s.links.FindByLinkID(ctx, linkID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return s.events.Insert(ctx, &model.AnalyticsEvent{
		DocumentID: link.DocumentID,
		LinkID:     &link.LinkID,
		VisitorID:  visitorID,
		EventType:  eventType,
		Meta:       meta,
	})
}

func (s *analyticsService) DocumentSummary(ctx context.Context, ownerID, documentID string, period model.AnalyticsPeriod) (*model.DocumentAnalytics, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.docs.FindOwned(ctx, ownerID, documentID); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	since := s.periodStart(period)

	totals, err := s.events.TotalsForDocument(ctx, documentID, since)
	if err != nil {
		return nil, err
	}
	stats, err := s.events.StatsByLink(ctx, documentID)
	if err != nil {
		return nil, err
	}
	for i := range stats {
		stats[i].LinkURL = BuildLinkURL(s.baseURL, stats[i].LinkID)
	}
	buckets, err := s.events.DailyBuckets(ctx, documentID, since)
	if err != nil {
		return nil, err
	}

	return &model.DocumentAnalytics{
		TotalViews:     totals.Views,
		TotalDownloads: totals.Downloads,
		LastAccessed:   totals.LastAccessed,
		LinkStats:      stats,
		Buckets:        buckets,
	}, nil
}

func (s *analyticsService) LinkSummary(ctx context.Context, ownerID, documentID, linkID string) (*model.LinkAnalytics, error) {
	if documentID == "" || linkID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.docs.FindOwned(ctx, ownerID, documentID); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.events.TotalsForLink(ctx, documentID, linkID)
}

// periodStart converts a trailing-window period into an absolute instant in
// UTC, or nil for the unbounded period.
func (s *analyticsService) periodStart(period model.AnalyticsPeriod) *time.Time {
	days := period.Days()
	if days == 0 {
		return nil
	}
	t := s.now().UTC().AddDate(0, 0, -days)
	return &t
}
