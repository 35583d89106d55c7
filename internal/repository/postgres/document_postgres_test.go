package postgres

import (
	"context"
	"testing"
	"time"

	"gedapi/internal/model"
	"gedapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

var docColumns = []string{"id", "original_name", "stored_name", "storage_path", "category_id", "description", "uploaded_at"}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		OriginalName: "report.pdf",
		StoredName:   "token_1700000000.pdf",
		StoragePath:  "documents/token_1700000000.pdf",
		CategoryID:   3,
		Description:  "annual report",
		UploadedAt:   now,
	}

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows(docColumns).
			AddRow(int64(7), doc.OriginalName, doc.StoredName, doc.StoragePath, doc.CategoryID, doc.Description, doc.UploadedAt)

		mock.ExpectQuery("INSERT INTO documents").
			WithArgs(doc.OriginalName, doc.StoredName, doc.StoragePath, doc.CategoryID, doc.Description, doc.UploadedAt).
			WillReturnRows(rows)

		result, err := repo.Create(ctx, doc)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), result.ID)
		assert.Equal(t, "report.pdf", result.OriginalName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown category", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO documents").
			WithArgs(doc.OriginalName, doc.StoredName, doc.StoragePath, doc.CategoryID, doc.Description, doc.UploadedAt).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		result, err := repo.Create(ctx, doc)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, repository.ErrForeignKeyViolation)
	})
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(docColumns).
			AddRow(int64(5), "report.pdf", "token.pdf", "documents/token.pdf", int64(3), "", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs(int64(5)).
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, 5)

		assert.NoError(t, err)
		assert.Equal(t, int64(5), doc.ID)
		assert.Equal(t, "documents/token.pdf", doc.StoragePath)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows(docColumns))

		doc, err := repo.FindByID(ctx, 404)

		assert.Nil(t, doc)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows(append(docColumns, "name")).
			AddRow(int64(2), "b.pdf", "t2.pdf", "documents/t2.pdf", int64(1), "", time.Now(), "Contratos").
			AddRow(int64(1), "a.pdf", "t1.pdf", "documents/t1.pdf", int64(1), "", time.Now().Add(-time.Hour), "Contratos")

		mock.ExpectQuery("SELECT (.+) FROM documents d\\s+JOIN categories c ON d.category_id = c.id").
			WithArgs(10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, "Contratos", res.Items[0].CategoryName)
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery("SELECT (.+) FROM documents d\\s+JOIN categories c ON d.category_id = c.id").
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows(append(docColumns, "name")))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Empty(t, res.Items)
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents WHERE id = ?").
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 5))
	})

	t.Run("already gone", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents WHERE id = ?").
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 5), repository.ErrNotFound)
	})
}
