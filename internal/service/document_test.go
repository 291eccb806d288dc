package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docshare/internal/model"
	"docshare/internal/repository"
	repoMocks "docshare/internal/repository/mocks"
	"docshare/internal/storage"
	storeMocks "docshare/internal/storage/mocks"
)

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name             string
		originalFilename string
		contentType      string
		size             int64
		setupMocks       func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) io.Reader
		wantErr          error
		wantErrMsg       string
	}{
		{
			name:             "happy path",
			originalFilename: "test.txt",
			contentType:      "text/plain",
			size:             11,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello world")
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".txt")
				}), r, storage.PutObjectOptions{
					Size:        11,
					ContentType: "text/plain",
					Metadata:    map[string]string{"original-filename": "test.txt"},
				}).Return(storage.ObjectInfo{
					Key:         "documents/uuid.txt",
					Size:        11,
					ContentType: "text/plain",
				}, nil)

				mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.UserID == "user-1" && doc.FileName == "test.txt" && doc.StoragePath == "documents/uuid.txt"
				})).Return(&model.Document{ID: "gen-id"}, nil)

				return r
			},
			wantErr: nil,
		},
		{
			name:             "validation error - nil reader",
			originalFilename: "test.txt",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:             "storage error",
			originalFilename: "test.txt",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:             "repository error with successful rollback",
			originalFilename: "test.txt",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:             "repository error with failed rollback",
			originalFilename: "test.txt",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(mStore, mRepo, nil)

			r := tt.setupMocks(mStore, mRepo)

			doc, err := svc.Upload(ctx, "user-1", r, tt.originalFilename, tt.contentType, tt.size)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		checkRes   func(t *testing.T, res *DocumentListResult)
	}{
		{
			name:   "happy path",
			limit:  10,
			offset: 0,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("ListByUser", ctx, "user-1", repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Document]{
						Items: []model.Document{{ID: "1"}, {ID: "2"}},
						Total: 2,
					}, nil)
			},
			checkRes: func(t *testing.T, res *DocumentListResult) {
				assert.Equal(t, 2, len(res.Items))
				assert.Equal(t, 2, res.Total)
			},
		},
		{
			name:   "pagination boundary - zero limit uses default",
			limit:  0,
			offset: -1,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("ListByUser", ctx, "user-1", repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Document]{Items: []model.Document{}, Total: 0}, nil)
			},
		},
		{
			name:  "repository error",
			limit: 10,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("ListByUser", ctx, "user-1", mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(nil, mRepo, nil)

			tt.setupMocks(mRepo)

			res, err := svc.List(ctx, "user-1", tt.limit, tt.offset)

			if tt.wantErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindOwned", ctx, "user-1", "doc-1").Return(&model.Document{ID: "doc-1"}, nil)

		svc := NewDocumentService(nil, mRepo, nil)
		doc, err := svc.Get(ctx, "user-1", "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, "doc-1", doc.ID)
	})

	t.Run("not owned looks identical to absent", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindOwned", ctx, "user-2", "doc-1").Return(nil, sql.ErrNoRows)

		svc := NewDocumentService(nil, mRepo, nil)
		_, err := svc.Get(ctx, "user-2", "doc-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewDocumentService(nil, new(repoMocks.MockDocumentRepository), nil)
		_, err := svc.Get(ctx, "user-1", "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path removes storage object then row", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)

		mRepo.On("FindOwned", ctx, "user-1", "doc-1").
			Return(&model.Document{ID: "doc-1", StoragePath: "documents/abc.pdf"}, nil)
		mStore.On("Delete", ctx, "documents/abc.pdf").Return(nil)
		mRepo.On("Delete", ctx, "doc-1").Return(nil)

		svc := NewDocumentService(mStore, mRepo, nil)
		assert.NoError(t, svc.Delete(ctx, "user-1", "doc-1"))
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("storage failure keeps the row", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)

		mRepo.On("FindOwned", ctx, "user-1", "doc-1").
			Return(&model.Document{ID: "doc-1", StoragePath: "documents/abc.pdf"}, nil)
		mStore.On("Delete", ctx, "documents/abc.pdf").Return(errors.New("storage fail"))

		svc := NewDocumentService(mStore, mRepo, nil)
		err := svc.Delete(ctx, "user-1", "doc-1")

		assert.Error(t, err)
		mRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not owned", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindOwned", ctx, "user-2", "doc-1").Return(nil, sql.ErrNoRows)

		svc := NewDocumentService(nil, mRepo, nil)
		assert.ErrorIs(t, svc.Delete(ctx, "user-2", "doc-1"), ErrNotFound)
	})
}

func TestDocumentService_Visitors(t *testing.T) {
	ctx := context.Background()
	visited := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mVisitors := new(repoMocks.MockVisitorRepository)

		mRepo.On("FindOwned", ctx, "user-1", "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		mVisitors.On("ListByDocument", ctx, "doc-1").Return([]model.DocumentLinkVisitor{
			{ID: 1, LinkID: "slug", FirstName: "Ada", Email: "ada@example.com", VisitedAt: visited},
		}, nil)

		svc := NewDocumentService(nil, mRepo, mVisitors)
		visitors, err := svc.Visitors(ctx, "user-1", "doc-1")

		assert.NoError(t, err)
		assert.Len(t, visitors, 1)
		assert.Equal(t, "Ada", visitors[0].FirstName)
	})

	t.Run("not owned", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindOwned", ctx, "user-2", "doc-1").Return(nil, sql.ErrNoRows)

		svc := NewDocumentService(nil, mRepo, new(repoMocks.MockVisitorRepository))
		_, err := svc.Visitors(ctx, "user-2", "doc-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
