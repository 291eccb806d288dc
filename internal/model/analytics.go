package model

import (
	"encoding/json"
	"time"
)

// AnalyticsEventType distinguishes the two usage facts recorded per document.
type AnalyticsEventType string

const (
	EventView     AnalyticsEventType = "VIEW"
	EventDownload AnalyticsEventType = "DOWNLOAD"
)

// Valid reports whether the event type is one of the known values.
func (t AnalyticsEventType) Valid() bool {
	return t == EventView || t == EventDownload
}

// AnalyticsPeriod filters summaries to a trailing window of days.
type AnalyticsPeriod string

const (
	Period7d  AnalyticsPeriod = "7d"
	Period30d AnalyticsPeriod = "30d"
	PeriodAll AnalyticsPeriod = "all"
)

// Days returns the window size in days, or 0 for the unbounded period.
func (p AnalyticsPeriod) Days() int {
	switch p {
	case Period7d:
		return 7
	case Period30d:
		return 30
	default:
		return 0
	}
}

// AnalyticsEvent is an immutable usage fact. Summaries are always derived from
// these rows at read time, never stored.
type AnalyticsEvent struct {
	ID         int64              `json:"id"`
	DocumentID string             `json:"documentId"`
	LinkID     *string            `json:"linkId"`
	VisitorID  *int64             `json:"visitorId"`
	EventType  AnalyticsEventType `json:"eventType"`
	OccurredAt time.Time          `json:"occurredAt"`
	Meta       json.RawMessage    `json:"meta,omitempty"`
}

// LinkStat carries the per-link recency columns of a document summary. A link
// with no recorded events still appears, with nil timestamps.
type LinkStat struct {
	LinkID         string     `json:"linkId"`
	Alias          *string    `json:"linkAlias"`
	LinkURL        string     `json:"linkUrl"`
	LastViewed     *time.Time `json:"lastViewed"`
	LastDownloaded *time.Time `json:"lastDownloaded"`
}

// AnalyticsBucket is one day of the derived time series, keyed YYYY-MM-DD in UTC.
type AnalyticsBucket struct {
	Date      string `json:"date"`
	Views     int    `json:"views"`
	Downloads int    `json:"downloads"`
}

// DocumentAnalytics is the derived summary for one document.
type DocumentAnalytics struct {
	TotalViews     int               `json:"totalViews"`
	TotalDownloads int               `json:"totalDownloads"`
	LastAccessed   *time.Time        `json:"lastAccessed"`
	LinkStats      []LinkStat        `json:"documentLinkStats"`
	Buckets        []AnalyticsBucket `json:"buckets"`
}

// LinkAnalytics is the derived summary scoped to a single link.
type LinkAnalytics struct {
	TotalViews     int        `json:"totalViews"`
	TotalDownloads int        `json:"totalDownloads"`
	LastViewed     *time.Time `json:"lastViewed"`
	LastDownloaded *time.Time `json:"lastDownloaded"`
}
