package repository

import (
	"context"

	"docshare/internal/model"
)

// DocumentRepository defines data access for documents.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID regardless of owner.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindOwned returns a document only when it belongs to userID.
	// Absence and non-ownership are indistinguishable: both yield sql.ErrNoRows.
	FindOwned(ctx context.Context, userID, id string) (*model.Document, error)

	// ListByUser returns a paginated list of the user's documents and a total count.
	ListByUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.Document], error)

	// Delete removes a document by ID. Associated links, visitors, and analytics
	// events are removed by the store's cascade rules.
	Delete(ctx context.Context, id string) error
}
