package repository

import (
	"context"

	"docshare/internal/model"
)

// VisitorRepository defines data access for link visitor records.
// Rows are append-only; there are no update or delete operations.
type VisitorRepository interface {
	// Create inserts one visitor row and returns it with its generated ID.
	Create(ctx context.Context, v *model.DocumentLinkVisitor) (*model.DocumentLinkVisitor, error)

	// ListByDocument returns visitors across all of a document's links, newest first.
	ListByDocument(ctx context.Context, documentID string) ([]model.DocumentLinkVisitor, error)
}
