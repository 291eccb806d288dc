package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"docshare/internal/model"
	"docshare/internal/repository"
	"docshare/internal/repository/postgres"
)

// bcryptCost matches the work factor used for link passwords since the first
// links were minted; raising it would invalidate nothing but is a migration.
const bcryptCost = 10

// allowedVisitorFields are the visitor-detail keys a link may require.
var allowedVisitorFields = map[string]bool{
	"name":  true,
	"email": true,
}

// CreateLinkOptions carries the owner-supplied gating configuration for a new link.
type CreateLinkOptions struct {
	Alias          string
	IsPublic       bool
	Password       string
	ExpirationTime *time.Time
	VisitorFields  []string
}

// LinkService manages the lifecycle of document links: creation with its
// uniqueness and expiration rules, listing, and owner-scoped deletion.
type LinkService interface {
	// Create mints a link for a document the owner holds. The slug is generated
	// fresh and never reused; the password, if any, is stored only as a hash.
	Create(ctx context.Context, ownerID, documentID string, opts CreateLinkOptions) (*model.DocumentLink, error)

	// ListForDocument returns all links of an owned document.
	ListForDocument(ctx context.Context, ownerID, documentID string) ([]model.DocumentLink, error)

	// Delete removes a link the owner created. Non-ownership reports ErrNotFound.
	Delete(ctx context.Context, ownerID, linkID string) error
}

type linkService struct {
	links   repository.LinkRepository
	docs    repository.DocumentRepository
	baseURL string
	now     func() time.Time
}

// NewLinkService constructs a LinkService. baseURL is the externally visible
// host prefix used to build link URLs at read time.
func NewLinkService(links repository.LinkRepository, docs repository.DocumentRepository, baseURL string) LinkService {
	return &linkService{
		links:   links,
		docs:    docs,
		baseURL: baseURL,
		now:     time.Now,
	}
}

func (s *linkService) Create(ctx context.Context, ownerID, documentID string, opts CreateLinkOptions) (*model.DocumentLink, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if opts.ExpirationTime != nil && !opts.ExpirationTime.After(s.now()) {
		return nil, ErrExpirationInPast
	}
	for _, f := range opts.VisitorFields {
		if !allowedVisitorFields[f] {
			return nil, NewValidationError("visitorFields", fmt.Sprintf("unknown visitor field %q", f))
		}
	}

	link := &model.DocumentLink{
		LinkID:          uuid.NewString(),
		DocumentID:      documentID,
		CreatedByUserID: ownerID,
		IsPublic:        opts.IsPublic,
		ExpirationTime:  opts.ExpirationTime,
		VisitorFields:   opts.VisitorFields,
	}
	if link.VisitorFields == nil {
		link.VisitorFields = []string{}
	}
	if alias := strings.TrimSpace(opts.Alias); alias != "" {
		link.Alias = &alias
	}
	if opts.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		h := string(hash)
		link.PasswordHash = &h
	}

	// The ownership check and the insert are one statement; the unique index on
	// (document_id, alias) is the authority for alias conflicts.
	stored, err := s.links.CreateOwned(ctx, ownerID, link)
	if err != nil {
		switch {
		case isNoRows(err):
			return nil, ErrNotFound
		case postgres.IsUniqueViolation(err):
			return nil, ErrAliasConflict
		}
		return nil, fmt.Errorf("create link: %w", err)
	}
	stored.LinkURL = BuildLinkURL(s.baseURL, stored.LinkID)
	return stored, nil
}

func (s *linkService) ListForDocument(ctx context.Context, ownerID, documentID string) ([]model.DocumentLink, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.docs.FindOwned(ctx, ownerID, documentID); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	links, err := s.links.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	for i := range links {
		links[i].LinkURL = BuildLinkURL(s.baseURL, links[i].LinkID)
	}
	return links, nil
}

func (s *linkService) Delete(ctx context.Context, ownerID, linkID string) error {
	if linkID == "" {
		return ErrIDRequired
	}
	if err := s.links.DeleteOwned(ctx, ownerID, linkID); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// BuildLinkURL derives the externally visible URL for a link slug. URLs are
// never persisted so the base host can change across environments.
func BuildLinkURL(baseURL, linkID string) string {
	return strings.TrimRight(baseURL, "/") + "/documentAccess/" + linkID
}
