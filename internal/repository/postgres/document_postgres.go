package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gedapi/internal/model"
	"gedapi/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (original_name, stored_name, storage_path, category_id, description, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, original_name, stored_name, storage_path, category_id, description, uploaded_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.OriginalName,
		doc.StoredName,
		doc.StoragePath,
		doc.CategoryID,
		doc.Description,
		doc.UploadedAt,
	)
	var out model.Document
	if err := row.Scan(
		&out.ID,
		&out.OriginalName,
		&out.StoredName,
		&out.StoragePath,
		&out.CategoryID,
		&out.Description,
		&out.UploadedAt,
	); err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("category %d: %w", doc.CategoryID, repository.ErrForeignKeyViolation)
		}
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document by its id.
func (r *DocumentPostgres) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	const q = `
		SELECT id, original_name, stored_name, storage_path, category_id, description, uploaded_at
		FROM documents
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.OriginalName,
		&d.StoredName,
		&d.StoragePath,
		&d.CategoryID,
		&d.Description,
		&d.UploadedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns documents joined with their category name, most recent first,
// using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.DocumentView], error) {
	const qCount = `SELECT COUNT(*) FROM documents`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT d.id, d.original_name, d.stored_name, d.storage_path, d.category_id, d.description, d.uploaded_at, c.name
		FROM documents d
		JOIN categories c ON d.category_id = c.id
		ORDER BY d.uploaded_at DESC, d.id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentView, 0)
	for rows.Next() {
		var v model.DocumentView
		if err := rows.Scan(
			&v.ID,
			&v.OriginalName,
			&v.StoredName,
			&v.StoragePath,
			&v.CategoryID,
			&v.Description,
			&v.UploadedAt,
			&v.CategoryName,
		); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.DocumentView]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a document by id. Zero affected rows map to ErrNotFound so a
// concurrent delete race produces exactly one winner.
func (r *DocumentPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
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
