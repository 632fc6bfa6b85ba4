package documents

import "context"

type Service interface {
	FindAll(ctx context.Context, ownerID int) ([]Document, error)
	FindOne(ctx context.Context, id string, ownerID int) (*Document, error)
	Create(ctx context.Context, req CreateDocumentRequest, ownerID int) (*Document, error)
	Update(ctx context.Context, id string, req UpdateDocumentRequest, ownerID int) (*Document, error)
	Delete(ctx context.Context, id string, ownerID int) error
}

// Notifier receives document change events for fan-out to connected
// clients. Implementations must not block the request path.
type Notifier interface {
	DocumentChanged(ownerID int, action string, documentID string)
}
