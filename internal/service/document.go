package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"gedapi/internal/model"
	"gedapi/internal/repository"
	"gedapi/internal/storage"
)

var (
	ErrInvalidID       = errors.New("id must be a positive integer")
	ErrNotFound        = errors.New("document not found")
	ErrReaderNil       = errors.New("reader is nil")
	ErrUnsupportedType = errors.New("file type is not allowed")
	ErrUnknownCategory = errors.New("category does not exist")
	ErrArtifactMissing = errors.New("artifact is missing from the file store")
)

// allowedExtensions is the only content gate: office documents and common
// image formats, matched case-insensitively on the original filename.
// There is no magic-byte sniffing.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// DocumentListResult is the service-level DTO for paginated document listings.
type DocumentListResult struct {
	Items []model.DocumentView `json:"data"`
	Total int                  `json:"total"`
}

// DeleteResult reports the outcome of a document deletion. The metadata row
// is the primary outcome; artifact removal is best-effort and its failure is
// a secondary condition, not an error.
type DeleteResult struct {
	ArtifactRemoved bool `json:"artifact_removed"`
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload stores the content in the file store, then inserts the metadata
	// row, rolling back the artifact if the insert fails. originalName is
	// used only for display and to derive the extension; the stored name is
	// an opaque generated token.
	Upload(ctx context.Context, r io.Reader, originalName string, categoryID int64, description string) (*model.Document, error)

	// List returns documents joined with their category name, most recent
	// first, using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its id.
	Get(ctx context.Context, id int64) (*model.Document, error)

	// Download returns the document and a streaming reader over its artifact.
	Download(ctx context.Context, id int64) (io.ReadCloser, *model.Document, error)

	// Delete removes the metadata row first, then the artifact best-effort.
	Delete(ctx context.Context, id int64) (*DeleteResult, error)
}

type documentService struct {
	store storage.FileStore
	repo  repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.FileStore, repo repository.DocumentRepository) DocumentService {
	return &documentService{store: store, repo: repo}
}

// storedNameFor builds the opaque on-disk filename from a random token, the
// upload timestamp and the original extension.
func storedNameFor(originalName string, uploadedAt time.Time) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s_%d%s", uuid.New().String(), uploadedAt.Unix(), ext)
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalName string, categoryID int64, description string) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if categoryID <= 0 {
		return nil, ErrUnknownCategory
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	uploadedAt := time.Now().UTC()
	storedName := storedNameFor(originalName, uploadedAt)
	key := filepath.ToSlash(filepath.Join("documents", storedName))

	// The artifact write always happens before the metadata insert.
	if err := s.store.Put(ctx, key, r); err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}

	doc := &model.Document{
		OriginalName: originalName,
		StoredName:   storedName,
		StoragePath:  key,
		CategoryID:   categoryID,
		Description:  description,
		UploadedAt:   uploadedAt,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			err = ErrUnknownCategory
		}
		// Compensate: remove the just-written artifact so no orphan survives
		// the failed insert. The cleanup is attempted once; its own failure
		// is reported alongside the insert error, never instead of it.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("metadata insert failed: %w (artifact cleanup also failed: %v)", err, delErr)
		}
		return nil, fmt.Errorf("metadata insert failed: %w", err)
	}
	return stored, nil
}

// List returns paginated document views without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Download opens the artifact for an existing document. A row whose artifact
// cannot be opened reports ErrArtifactMissing.
func (s *documentService) Download(ctx context.Context, id int64) (io.ReadCloser, *model.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrArtifactMissing, err)
	}
	return rc, doc, nil
}

// Delete removes the metadata row first; the row is the source of truth.
// The artifact removal afterwards is best-effort.
func (s *documentService) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Lost the race against a concurrent delete of the same id.
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return &DeleteResult{ArtifactRemoved: false}, nil
	}
	return &DeleteResult{ArtifactRemoved: true}, nil
}
