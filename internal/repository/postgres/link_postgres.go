package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// LinkPostgres is a PostgreSQL implementation of repository.LinkRepository.
type LinkPostgres struct {
	db *sql.DB
}

// NewLinkPostgres creates a new LinkPostgres repository.
func NewLinkPostgres(db *sql.DB) *LinkPostgres {
	return &LinkPostgres{db: db}
}

var _ repository.LinkRepository = (*LinkPostgres)(nil)

const linkColumns = `id, link_id, document_id, created_by_user_id, alias, is_public,
	password_hash, expiration_time, visitor_fields, created_at, updated_at`

func scanLink(row interface{ Scan(...any) error }) (*model.DocumentLink, error) {
	var (
		l      model.DocumentLink
		fields []byte
	)
	if err := row.Scan(
		&l.ID,
		&l.LinkID,
		&l.DocumentID,
		&l.CreatedByUserID,
		&l.Alias,
		&l.IsPublic,
		&l.PasswordHash,
		&l.ExpirationTime,
		&fields,
		&l.CreatedAt,
		&l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fields, &l.VisitorFields); err != nil {
		return nil, fmt.Errorf("decode visitor_fields: %w", err)
	}
	return &l, nil
}

// CreateOwned inserts the link in the same statement that verifies document
// ownership. The SELECT produces zero rows when the document is absent or owned
// by someone else, so the insert silently becomes a no-op and the RETURNING scan
// yields sql.ErrNoRows.
func (r *LinkPostgres) CreateOwned(ctx context.Context, ownerID string, link *model.DocumentLink) (*model.DocumentLink, error) {
	fields, err := json.Marshal(link.VisitorFields)
	if err != nil {
		return nil, fmt.Errorf("encode visitor_fields: %w", err)
	}

	const q = `
		INSERT INTO document_links
			(link_id, document_id, created_by_user_id, alias, is_public, password_hash, expiration_time, visitor_fields)
		SELECT $1, d.id, $3, $4, $5, $6, $7, $8
		FROM documents d
		WHERE d.id = $2 AND d.user_id = $3
		RETURNING ` + linkColumns
	row := r.db.QueryRowContext(ctx, q,
		link.LinkID,
		link.DocumentID,
		ownerID,
		link.Alias,
		link.IsPublic,
		link.PasswordHash,
		link.ExpirationTime,
		fields,
	)
	return scanLink(row)
}

// FindByLinkID fetches a link by its public slug.
func (r *LinkPostgres) FindByLinkID(ctx context.Context, linkID string) (*model.DocumentLink, error) {
	const q = `SELECT ` + linkColumns + ` FROM document_links WHERE link_id = $1`
	return scanLink(r.db.QueryRowContext(ctx, q, linkID))
}

// FindWithDocument fetches a link together with its owning document.
func (r *LinkPostgres) FindWithDocument(ctx context.Context, linkID string) (*model.DocumentLink, *model.Document, error) {
	const q = `
		SELECT l.id, l.link_id, l.document_id, l.created_by_user_id, l.alias, l.is_public,
			l.password_hash, l.expiration_time, l.visitor_fields, l.created_at, l.updated_at,
			d.id, d.user_id, d.file_name, d.storage_path, d.size, d.file_type, d.created_at
		FROM document_links l
		JOIN documents d ON d.id = l.document_id
		WHERE l.link_id = $1
	`
	var (
		l      model.DocumentLink
		d      model.Document
		fields []byte
	)
	err := r.db.QueryRowContext(ctx, q, linkID).Scan(
		&l.ID,
		&l.LinkID,
		&l.DocumentID,
		&l.CreatedByUserID,
		&l.Alias,
		&l.IsPublic,
		&l.PasswordHash,
		&l.ExpirationTime,
		&fields,
		&l.CreatedAt,
		&l.UpdatedAt,
		&d.ID,
		&d.UserID,
		&d.FileName,
		&d.StoragePath,
		&d.Size,
		&d.FileType,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, nil, err
	}
	if err := json.Unmarshal(fields, &l.VisitorFields); err != nil {
		return nil, nil, fmt.Errorf("decode visitor_fields: %w", err)
	}
	return &l, &d, nil
}

// ListByDocument returns all links for a document, newest first.
func (r *LinkPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.DocumentLink, error) {
	const q = `
		SELECT ` + linkColumns + `
		FROM document_links
		WHERE document_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]model.DocumentLink, 0)
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return links, nil
}

// DeleteOwned removes a link scoped to its creator in one statement.
// Zero affected rows reports sql.ErrNoRows: non-ownership and absence look the same.
func (r *LinkPostgres) DeleteOwned(ctx context.Context, ownerID, linkID string) error {
	const q = `DELETE FROM document_links WHERE link_id = $1 AND created_by_user_id = $2`
	res, err := r.db.ExecContext(ctx, q, linkID, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
