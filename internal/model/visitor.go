package model

import "time"

// DocumentLinkVisitor records one successful gated access of a link.
// Rows are append-only; the core never updates or deletes them.
type DocumentLinkVisitor struct {
	ID        int64     `json:"id"`
	LinkID    string    `json:"linkId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	VisitedAt time.Time `json:"visitedAt"`
}
