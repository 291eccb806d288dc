package repository

import (
	"context"

	"docshare/internal/model"
)

// LinkRepository defines data access for document links.
type LinkRepository interface {
	// CreateOwned inserts a link row only when the target document belongs to
	// ownerID, as one statement, so the ownership check and the insert cannot be
	// separated by a concurrent mutation. Returns sql.ErrNoRows when the document
	// is absent or not owned. An alias collision surfaces as the store's
	// unique-violation error; callers translate it.
	CreateOwned(ctx context.Context, ownerID string, link *model.DocumentLink) (*model.DocumentLink, error)

	// FindByLinkID returns a link by its public slug.
	FindByLinkID(ctx context.Context, linkID string) (*model.DocumentLink, error)

	// FindWithDocument returns a link and its owning document in one round trip.
	FindWithDocument(ctx context.Context, linkID string) (*model.DocumentLink, *model.Document, error)

	// ListByDocument returns all links for a document, newest first.
	ListByDocument(ctx context.Context, documentID string) ([]model.DocumentLink, error)

	// DeleteOwned removes a link only when created by ownerID.
	// Returns sql.ErrNoRows when no row matched.
	DeleteOwned(ctx context.Context, ownerID, linkID string) error
}
