package documents

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectDocumentQuery = "FROM documents WHERE id = $1 AND owner_id = $2"
	insertDocumentQuery = "INSERT INTO documents (title, content, owner_id)"
)

func newTestPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

func documentRows(docs ...Document) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "content", "owner_id", "created_at", "updated_at"})
	for _, d := range docs {
		rows.AddRow(d.ID, d.Title, d.Content, d.OwnerID, d.CreatedAt, d.UpdatedAt)
	}
	return rows
}

func TestPostgresStore_Insert(t *testing.T) {
	store, mock := newTestPostgresStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(insertDocumentQuery)).
		WithArgs("Note", "hi", 1).
		WillReturnRows(documentRows(Document{
			ID: "9f2c1f6a-0b6c-4f6e-9a43-4f1f4c1f0001", Title: "Note", Content: "hi",
			OwnerID: 1, CreatedAt: now, UpdatedAt: now,
		}))

	doc, err := store.Insert(context.Background(), Document{Title: "Note", Content: "hi", OwnerID: 1})
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, 1, doc.OwnerID)
	assert.Equal(t, doc.CreatedAt, doc.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_InsertFailure(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertDocumentQuery)).
		WillReturnError(errors.New("connection reset"))

	_, err := store.Insert(context.Background(), Document{Title: "Note", OwnerID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindByID(t *testing.T) {
	store, mock := newTestPostgresStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentQuery)).
		WithArgs("doc-1", 1).
		WillReturnRows(documentRows(Document{
			ID: "doc-1", Title: "Note", Content: "hi", OwnerID: 1, CreatedAt: now, UpdatedAt: now,
		}))

	doc, err := store.FindByID(context.Background(), "doc-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindByID_WrongOwner(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	// The owner predicate is part of the query, so a foreign row comes
	// back as no rows at all.
	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentQuery)).
		WithArgs("doc-1", 2).
		WillReturnRows(documentRows())

	_, err := store.FindByID(context.Background(), "doc-1", 2)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_List(t *testing.T) {
	store, mock := newTestPostgresStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM documents WHERE owner_id = $1")).
		WithArgs(1).
		WillReturnRows(documentRows(
			Document{ID: "doc-1", Title: "One", OwnerID: 1, CreatedAt: now, UpdatedAt: now},
			Document{ID: "doc-2", Title: "Two", OwnerID: 1, CreatedAt: now, UpdatedAt: now},
		))

	docs, err := store.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Update(t *testing.T) {
	store, mock := newTestPostgresStore(t)
	created := time.Now().Add(-time.Hour)
	updated := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentQuery)).
		WithArgs("doc-1", 1).
		WillReturnRows(documentRows(Document{
			ID: "doc-1", Title: "Note", Content: "hi", OwnerID: 1, CreatedAt: created, UpdatedAt: created,
		}))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE documents SET title = $1, content = $2, updated_at = now()")).
		WithArgs("Note", "bye", "doc-1").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))
	mock.ExpectCommit()

	content := "bye"
	doc, err := store.Update(context.Background(), "doc-1", DocumentPatch{Content: &content}, 1)
	require.NoError(t, err)

	assert.Equal(t, "Note", doc.Title)
	assert.Equal(t, "bye", doc.Content)
	assert.Equal(t, created, doc.CreatedAt)
	assert.True(t, doc.UpdatedAt.After(doc.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateNotFound(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentQuery)).
		WithArgs("missing", 1).
		WillReturnRows(documentRows())
	mock.ExpectRollback()

	title := "New Title"
	_, err := store.Update(context.Background(), "missing", DocumentPatch{Title: &title}, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Delete(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE id = $1")).
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Delete(context.Background(), "doc-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteMissingIsNoOp(t *testing.T) {
	store, mock := newTestPostgresStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.Delete(context.Background(), "missing"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
