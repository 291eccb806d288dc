package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"docshare/internal/model"
	"docshare/internal/repository"
	"docshare/internal/storage"
)

// AccessCredentials is what a visitor presents alongside a link slug.
// Every field is optional; which ones matter depends on the link's gates.
type AccessCredentials struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AccessService validates inbound access attempts against a link's gates and,
// on success, issues a time-bounded signed retrieval reference for the
// underlying document. Gate order is a contract: existence, expiration,
// password, visitor details — the pipeline stops at the first failure.
type AccessService interface {
	// Metadata runs the existence and expiration gates only and returns the
	// gating flags a client needs before prompting the visitor. Reads mutate
	// nothing, so repeated calls return identical flags for an unexpired link.
	Metadata(ctx context.Context, linkID string) (*model.PublicLinkMeta, error)

	// Access runs the full gate pipeline, records the visitor for gated links,
	// and returns a signed reference whose validity never outlives the link.
	Access(ctx context.Context, linkID string, creds AccessCredentials) (*model.FileAccess, error)
}

type accessService struct {
	links      repository.LinkRepository
	visitors   repository.VisitorRepository
	store      storage.Storage
	defaultTTL time.Duration
	now        func() time.Time
	validate   *validator.Validate
}

// NewAccessService constructs an AccessService. defaultTTL bounds signed
// references for links without an expiration of their own.
func NewAccessService(links repository.LinkRepository, visitors repository.VisitorRepository, store storage.Storage, defaultTTL time.Duration) AccessService {
	return &accessService{
		links:      links,
		visitors:   visitors,
		store:      store,
		defaultTTL: defaultTTL,
		now:        time.Now,
		validate:   validator.New(),
	}
}

func (s *accessService) Metadata(ctx context.Context, linkID string) (*model.PublicLinkMeta, error) {
	if linkID == "" {
		return nil, ErrIDRequired
	}
	link, err := s.links.FindByLinkID(ctx, linkID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	if s.expired(link) {
		return nil, ErrLinkExpired
	}
	return &model.PublicLinkMeta{
		IsPasswordProtected: link.IsPasswordProtected(),
		VisitorFields:       link.VisitorFields,
	}, nil
}

func (s *accessService) Access(ctx context.Context, linkID string, creds AccessCredentials) (*model.FileAccess, error) {
	if linkID == "" {
		return nil, ErrIDRequired
	}

	// Existence gate. The document comes along in the same round trip so a
	// concurrent delete cannot split link and document state.
	link, doc, err := s.links.FindWithDocument(ctx, linkID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	// Expiration gate.
	if s.expired(link) {
		return nil, ErrLinkExpired
	}

	// Password gate. No configured password passes automatically; a missing or
	// wrong password fails the same way.
	if link.IsPasswordProtected() {
		if creds.Password == "" {
			return nil, ErrInvalidPassword
		}
		if bcrypt.CompareHashAndPassword([]byte(*link.PasswordHash), []byte(creds.Password)) != nil {
			return nil, ErrInvalidPassword
		}
	}

	// Visitor-detail gate.
	if err := s.checkVisitorFields(link, creds); err != nil {
		return nil, err
	}

	// Truly public links have no identity to record; gated links log the visit
	// before the reference is issued, so a logging failure never revokes a
	// grant that already happened.
	if !link.IsTrulyPublic() {
		_, err := s.visitors.Create(ctx, &model.DocumentLinkVisitor{
			LinkID:    link.LinkID,
			FirstName: strings.TrimSpace(creds.FirstName),
			LastName:  strings.TrimSpace(creds.LastName),
			Email:     strings.TrimSpace(creds.Email),
		})
		if err != nil {
			return nil, fmt.Errorf("log visitor: %w", err)
		}
	}

	ttl, err := s.referenceTTL(link)
	if err != nil {
		return nil, err
	}
	signedURL, err := s.store.PresignGet(ctx, doc.StoragePath, ttl)
	if err != nil {
		return nil, fmt.Errorf("presign document: %w", err)
	}

	return &model.FileAccess{
		SignedURL:  signedURL,
		FileName:   doc.FileName,
		Size:       doc.Size,
		FileType:   doc.FileType,
		DocumentID: doc.ID,
	}, nil
}

func (s *accessService) expired(link *model.DocumentLink) bool {
	return link.ExpirationTime != nil && !link.ExpirationTime.After(s.now())
}

// referenceTTL computes how long the signed reference may stay valid. The
// expiration check here is authoritative even though the gate already ran: the
// link can expire between the gate check and issuance, and a visitor must
// never receive a working reference for an expired link.
func (s *accessService) referenceTTL(link *model.DocumentLink) (time.Duration, error) {
	ttl := s.defaultTTL
	if link.ExpirationTime != nil {
		untilExpiry := link.ExpirationTime.Sub(s.now())
		if untilExpiry <= 0 {
			return 0, ErrLinkExpired
		}
		if untilExpiry < ttl {
			ttl = untilExpiry
		}
	}
	return ttl, nil
}

func (s *accessService) checkVisitorFields(link *model.DocumentLink, creds AccessCredentials) error {
	fields := map[string]string{}
	for _, f := range link.VisitorFields {
		switch f {
		case "name":
			if strings.TrimSpace(creds.FirstName) == "" {
				fields["firstName"] = "name is required"
			}
		case "email":
			email := strings.TrimSpace(creds.Email)
			if email == "" {
				fields["email"] = "email is required"
			} else if s.validate.Var(email, "email") != nil {
				fields["email"] = "invalid email"
			}
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
