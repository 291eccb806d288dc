package postgres

import (
	"context"
	"database/sql"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// VisitorPostgres is a PostgreSQL implementation of repository.VisitorRepository.
type VisitorPostgres struct {
	db *sql.DB
}

// NewVisitorPostgres creates a new VisitorPostgres repository.
func NewVisitorPostgres(db *sql.DB) *VisitorPostgres {
	return &VisitorPostgres{db: db}
}

var _ repository.VisitorRepository = (*VisitorPostgres)(nil)

// Create inserts one visitor row. visited_at comes from the database clock.
func (r *VisitorPostgres) Create(ctx context.Context, v *model.DocumentLinkVisitor) (*model.DocumentLinkVisitor, error) {
	const q = `
		INSERT INTO document_link_visitors (link_id, first_name, last_name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, link_id, first_name, last_name, email, visited_at
	`
	row := r.db.QueryRowContext(ctx, q, v.LinkID, v.FirstName, v.LastName, v.Email)
	var out model.DocumentLinkVisitor
	if err := row.Scan(
		&out.ID,
		&out.LinkID,
		&out.FirstName,
		&out.LastName,
		&out.Email,
		&out.VisitedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByDocument returns visitors across all of a document's links, newest first.
func (r *VisitorPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.DocumentLinkVisitor, error) {
	const q = `
		SELECT v.id, v.link_id, v.first_name, v.last_name, v.email, v.visited_at
		FROM document_link_visitors v
		JOIN document_links l ON l.link_id = v.link_id
		WHERE l.document_id = $1
		ORDER BY v.visited_at DESC, v.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visitors := make([]model.DocumentLinkVisitor, 0)
	for rows.Next() {
		var v model.DocumentLinkVisitor
		if err := rows.Scan(
			&v.ID,
			&v.LinkID,
			&v.FirstName,
			&v.LastName,
			&v.Email,
			&v.VisitedAt,
		); err != nil {
			return nil, err
		}
		visitors = append(visitors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return visitors, nil
}
