package documents

import "time"

// Document is one unit of user-owned content. The ID is assigned by the
// active store backend and never changes afterwards; OwnerID is fixed at
// creation and cannot be reassigned through updates.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   int       `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentPatch carries only the fields a caller wants to change. A nil
// field means "leave as is", so an empty string can still be written
// deliberately. UpdatedAt is always recomputed by the store, never taken
// from the caller.
type DocumentPatch struct {
	Title   *string
	Content *string
}

// Apply merges the present fields onto doc.
func (p DocumentPatch) Apply(doc *Document) {
	if p.Title != nil {
		doc.Title = *p.Title
	}
	if p.Content != nil {
		doc.Content = *p.Content
	}
}
