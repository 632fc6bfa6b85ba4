package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound reports that a document does not exist or belongs to another
// user. The two cases are deliberately indistinguishable so one user can
// never learn that another user's document exists.
var ErrNotFound = errors.New("document not found")

// Store is the storage contract shared by every backend. List, FindByID and
// Update are scoped by the owner inside the contract itself, so no backend
// can skip the authorization check. Delete removes by id alone; verifying
// ownership first is the DocumentService's job.
type Store interface {
	List(ctx context.Context, ownerID int) ([]Document, error)
	FindByID(ctx context.Context, id string, ownerID int) (*Document, error)
	Insert(ctx context.Context, doc Document) (*Document, error)
	Update(ctx context.Context, id string, patch DocumentPatch, ownerID int) (*Document, error)
	Delete(ctx context.Context, id string) error
}

const (
	StoreTypeFilesystem = "filesystem"
	StoreTypePostgres   = "postgres"
)

type StoreConfig struct {
	Type    string
	DataDir string
	DB      *sql.DB
}

// NewStore constructs exactly one backend from configuration. It is called
// once at startup; an unknown store type is an error and the process must
// not start with it.
func NewStore(cfg StoreConfig) (Store, error) {
	switch cfg.Type {
	case StoreTypeFilesystem:
		return NewFileStore(cfg.DataDir)
	case StoreTypePostgres:
		if cfg.DB == nil {
			return nil, fmt.Errorf("postgres document store requires a database connection")
		}
		return NewPostgresStore(cfg.DB), nil
	default:
		return nil, fmt.Errorf("unknown document store type: %q", cfg.Type)
	}
}
