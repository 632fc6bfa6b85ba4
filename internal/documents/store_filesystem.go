package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const fileExt = ".json"

// FileStore keeps one JSON file per document, named <id>.json, under a base
// directory. Ownership lives in the encoded record itself and every read is
// filtered on it. Concurrent writers to the same document resolve
// last-write-wins; there is no per-id locking.
type FileStore struct {
	dataDir string
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %v", dataDir, err)
	}
	log.Printf("File store initialized at %s", dataDir)
	return &FileStore{dataDir: dataDir}, nil
}

func (s *FileStore) List(ctx context.Context, ownerID int) ([]Document, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data dir: %v", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != fileExt {
			continue
		}
		// An unparsable file fails the whole call rather than being
		// silently skipped.
		doc, err := s.readFile(filepath.Join(s.dataDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if doc.OwnerID == ownerID {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func (s *FileStore) FindByID(ctx context.Context, id string, ownerID int) (*Document, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	doc, err := s.readFile(s.pathFor(id))
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (s *FileStore) Insert(ctx context.Context, doc Document) (*Document, error) {
	if doc.ID != "" {
		log.Printf("Ignoring caller-supplied document id %q", doc.ID)
	}
	doc.ID = uuid.NewString()
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if err := s.writeFile(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *FileStore) Update(ctx context.Context, id string, patch DocumentPatch, ownerID int) (*Document, error) {
	doc, err := s.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	patch.Apply(doc)
	doc.UpdatedAt = time.Now()

	if err := s.writeFile(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if err := os.Remove(s.pathFor(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete document file: %v", err)
	}
	return nil
}

func (s *FileStore) readFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read document file: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document file %s: %v", filepath.Base(path), err)
	}
	return &doc, nil
}

func (s *FileStore) writeFile(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %v", err)
	}
	if err := os.WriteFile(s.pathFor(doc.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write document file: %v", err)
	}
	return nil
}

func (s *FileStore) pathFor(id string) string {
	return filepath.Join(s.dataDir, id+fileExt)
}

// validID rejects ids that would resolve to a path outside the data dir.
// The store only ever assigns uuids, so anything with a separator in it
// cannot name a stored document.
func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
