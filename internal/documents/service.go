package documents

import "context"

// DocumentService is the only consumer of the Store exposed to the
// transport layer. It stamps ownership on create and enforces it on delete,
// since the store deletes by id alone.
type DocumentService struct {
	Store Store
}

type CreateDocumentRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=100"`
	Content string `json:"content"`
}

type UpdateDocumentRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=100"`
	Content *string `json:"content"`
}

func (ds *DocumentService) FindAll(ctx context.Context, ownerID int) ([]Document, error) {
	return ds.Store.List(ctx, ownerID)
}

func (ds *DocumentService) FindOne(ctx context.Context, id string, ownerID int) (*Document, error) {
	return ds.Store.FindByID(ctx, id, ownerID)
}

func (ds *DocumentService) Create(ctx context.Context, req CreateDocumentRequest, ownerID int) (*Document, error) {
	doc := Document{
		Title:   req.Title,
		Content: req.Content,
		OwnerID: ownerID,
	}
	return ds.Store.Insert(ctx, doc)
}

func (ds *DocumentService) Update(ctx context.Context, id string, req UpdateDocumentRequest, ownerID int) (*Document, error) {
	patch := DocumentPatch{
		Title:   req.Title,
		Content: req.Content,
	}
	return ds.Store.Update(ctx, id, patch, ownerID)
}

// Delete verifies ownership through a scoped read before removing the
// record. The two steps are not atomic; a racing delete loses nothing since
// removal of an absent id is a no-op in both backends.
func (ds *DocumentService) Delete(ctx context.Context, id string, ownerID int) error {
	if _, err := ds.Store.FindByID(ctx, id, ownerID); err != nil {
		return err
	}
	return ds.Store.Delete(ctx, id)
}
