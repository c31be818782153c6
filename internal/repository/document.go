package repository

import (
	"context"

	"claimflow/internal/model"
)

// DocumentRepository persists attachment metadata. The object bytes live in storage.
type DocumentRepository interface {
	// Create inserts a document row and returns it as stored.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByClaim returns a claim's documents in upload order.
	ListByClaim(ctx context.Context, claimID string) ([]model.Document, error)

	// Delete removes a document row. Missing rows are not an error.
	Delete(ctx context.Context, id string) error
}
