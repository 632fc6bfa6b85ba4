package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// PostgresStore persists documents as rows with an owner foreign key. The
// owner_id predicate is part of every read and update query, so a row owned
// by another user is indistinguishable from a missing row.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const documentColumns = "id, title, content, owner_id, created_at, updated_at"

func (s *PostgresStore) List(ctx context.Context, ownerID int) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %v", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.OwnerID, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %v", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %v", err)
	}
	return docs, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string, ownerID int) (*Document, error) {
	var doc Document
	err := s.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents WHERE id = $1 AND owner_id = $2`, id, ownerID).
		Scan(&doc.ID, &doc.Title, &doc.Content, &doc.OwnerID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting document: %v", err)
	}
	return &doc, nil
}

func (s *PostgresStore) Insert(ctx context.Context, doc Document) (*Document, error) {
	if doc.ID != "" {
		log.Printf("Ignoring caller-supplied document id %q", doc.ID)
	}

	var created Document
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO documents (title, content, owner_id)
		VALUES ($1, $2, $3)
		RETURNING `+documentColumns, doc.Title, doc.Content, doc.OwnerID).
		Scan(&created.ID, &created.Title, &created.Content, &created.OwnerID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		// Single attempt, no retry. The caller decides what to do.
		log.Printf("Document insert failed: %v", err)
		return nil, fmt.Errorf("error creating document: %v", err)
	}
	return &created, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, patch DocumentPatch, ownerID int) (*Document, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %v", err)
	}
	defer tx.Rollback()

	var doc Document
	err = tx.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents WHERE id = $1 AND owner_id = $2`, id, ownerID).
		Scan(&doc.ID, &doc.Title, &doc.Content, &doc.OwnerID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error loading document for update: %v", err)
	}

	patch.Apply(&doc)

	err = tx.QueryRowContext(ctx, `
		UPDATE documents SET title = $1, content = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at`, doc.Title, doc.Content, doc.ID).
		Scan(&doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error updating document: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %v", err)
	}
	return &doc, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	// Deleting an absent id is a no-op, matching the filesystem backend.
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id); err != nil {
		return fmt.Errorf("error deleting document: %v", err)
	}
	return nil
}
