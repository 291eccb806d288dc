package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"docshare/internal/model"
	"docshare/internal/repository"
	"docshare/internal/storage"
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the owner-scoped use cases for handling documents.
type DocumentService interface {
	// Upload uploads the content to object storage, saves metadata to DB, and rolls back storage if DB save fails.
	// The display name stays the original filename; the stored object key is UUID + original extension.
	Upload(ctx context.Context, userID string, r io.Reader, originalFilename string, fileType string, size int64) (*model.Document, error)

	// List returns the user's documents using limit/offset and a total count.
	List(ctx context.Context, userID string, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by ID if it belongs to the user.
	Get(ctx context.Context, userID, id string) (*model.Document, error)

	// Delete removes a user's document from both storage and repository.
	// Links and their visitor/analytics records are removed with it.
	Delete(ctx context.Context, userID, id string) error

	// Visitors lists visitor records across all of the document's links.
	Visitors(ctx context.Context, userID, id string) ([]model.DocumentLinkVisitor, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store    storage.Storage
	repo     repository.DocumentRepository
	visitors repository.VisitorRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, visitors repository.VisitorRepository) DocumentService {
	return &documentService{store: store, repo: repo, visitors: visitors}
}

func (s *documentService) Upload(ctx context.Context, userID string, r io.Reader, originalFilename string, fileType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	// Object key is UUID + extension so uploads with the same name never collide
	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("documents", uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: fileType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		UserID:      userID,
		FileName:    originalFilename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		FileType:    objInfo.ContentType,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, userID string, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.ListByUser(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID, scoped to its owner.
func (s *documentService) Get(ctx context.Context, userID, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindOwned(ctx, userID, id)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	// Ownership check also yields the storage path
	doc, err := s.repo.FindOwned(ctx, userID, id)
	if err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

// Visitors lists visitor records across the document's links, newest first.
func (s *documentService) Visitors(ctx context.Context, userID, id string) ([]model.DocumentLinkVisitor, error) {
	if _, err := s.repo.FindOwned(ctx, userID, id); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.visitors.ListByDocument(ctx, id)
}
