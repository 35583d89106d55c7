package repository

import (
	"context"

	"gedapi/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record. The caller provides all fields
	// except ID, which the database generates. Returns ErrForeignKeyViolation
	// when the category id does not resolve.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its id, or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// List returns a page of documents joined with their category name,
	// ordered by upload time descending, plus the total row count.
	// Documents whose category no longer resolves are excluded by the join.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.DocumentView], error)

	// Delete removes a document by id. Returns ErrNotFound when no row
	// matched, so concurrent deletes of the same id resolve to exactly one
	// winner via the affected-row count.
	Delete(ctx context.Context, id int64) error
}
