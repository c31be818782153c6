package postgres

import (
	"context"
	"database/sql"

	"claimflow/internal/model"
	"claimflow/internal/repository"
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

const documentColumns = `id, claim_id, file_name, content_type, size, storage_path, uploaded_by, uploaded_at`

func scanDocument(s rowScanner) (*model.Document, error) {
	var d model.Document
	if err := s.Scan(
		&d.ID,
		&d.ClaimID,
		&d.FileName,
		&d.ContentType,
		&d.Size,
		&d.StoragePath,
		&d.UploadedBy,
		&d.UploadedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO claim_documents (id, claim_id, file_name, content_type, size, storage_path, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.ClaimID,
		doc.FileName,
		doc.ContentType,
		doc.Size,
		doc.StoragePath,
		doc.UploadedBy,
		doc.UploadedAt,
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM claim_documents WHERE id = $1`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

func (r *DocumentPostgres) ListByClaim(ctx context.Context, claimID string) ([]model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM claim_documents
		WHERE claim_id = $1
		ORDER BY uploaded_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM claim_documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
