package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gedapi/internal/model"
	"gedapi/internal/repository"
)

// CategoryPostgres is a PostgreSQL implementation of repository.CategoryRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CategoryPostgres struct {
	db *sql.DB
}

// NewCategoryPostgres creates a new CategoryPostgres repository.
func NewCategoryPostgres(db *sql.DB) *CategoryPostgres {
	return &CategoryPostgres{db: db}
}

var _ repository.CategoryRepository = (*CategoryPostgres)(nil)

// Create inserts a new category row and returns it with the generated id.
func (r *CategoryPostgres) Create(ctx context.Context, cat *model.Category) (*model.Category, error) {
	const q = `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, name
	`
	var out model.Category
	err := r.db.QueryRowContext(ctx, q, cat.Name).Scan(&out.ID, &out.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("category %q: %w", cat.Name, repository.ErrDuplicate)
		}
		return nil, err
	}
	return &out, nil
}

// List returns all categories ordered by name ascending.
func (r *CategoryPostgres) List(ctx context.Context) ([]model.Category, error) {
	const q = `
		SELECT id, name
		FROM categories
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a category by id. The FK from documents blocks the delete
// while references exist; that condition is surfaced as ErrForeignKeyViolation
// so callers can distinguish it from every other store failure.
func (r *CategoryPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM categories WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("category %d: %w", id, repository.ErrForeignKeyViolation)
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
