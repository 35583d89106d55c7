package repository

import (
	"context"

	"gedapi/internal/model"
)

// CategoryRepository defines data access for categories using SQL queries only.
// No business logic here — strictly persistence operations.
type CategoryRepository interface {
	// Create inserts a new category and returns it with the store-generated id.
	// Returns ErrDuplicate when the name already exists.
	Create(ctx context.Context, cat *model.Category) (*model.Category, error)

	// List returns all categories ordered by name ascending.
	List(ctx context.Context) ([]model.Category, error)

	// Delete removes a category by id. Returns ErrNotFound when no row matched
	// and ErrForeignKeyViolation when documents still reference the category.
	Delete(ctx context.Context, id int64) error
}
