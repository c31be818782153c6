package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"claimflow/internal/claim"
	"claimflow/internal/model"
	"claimflow/internal/repository"
	"claimflow/internal/storage"
)

// AttachmentService manages the supporting documents of a claim.
type AttachmentService interface {
	// Upload stores r under a generated key, then records its metadata. The object is removed again
	// when the metadata cannot be saved.
	Upload(ctx context.Context, p model.Principal, claimID string, r io.Reader, fileName, contentType string, size int64) (*model.Document, error)
	List(ctx context.Context, p model.Principal, claimID string) ([]model.Document, error)
	// Open streams a document's content. Callers close the reader.
	Open(ctx context.Context, p model.Principal, docID string) (io.ReadCloser, *model.Document, error)
	// Link returns a pre-signed download URL valid for expiry.
	Link(ctx context.Context, p model.Principal, docID string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, p model.Principal, docID string) error
}

type attachmentService struct {
	store  storage.Storage
	docs   repository.DocumentRepository
	claims repository.ClaimRepository
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewAttachmentService constructs a new AttachmentService.
func NewAttachmentService(store storage.Storage, docs repository.DocumentRepository, claims repository.ClaimRepository, log logrus.FieldLogger) AttachmentService {
	return &attachmentService{
		store:  store,
		docs:   docs,
		claims: claims,
		log:    log.WithField("component", "attachment_service"),
		now:    time.Now,
	}
}

// ObjectKey is the storage key for a new attachment of claimID.
func ObjectKey(claimID, fileName string) string {
	return path.Join("claims", claimID, uuid.NewString()+strings.ToLower(filepath.Ext(fileName)))
}

func (s *attachmentService) claimFor(ctx context.Context, p model.Principal, claimID string) (*model.Claim, error) {
	if claimID == "" {
		return nil, ErrIDRequired
	}
	c, err := s.claims.FindByID(ctx, claimID)
	if err != nil {
		return nil, claimNotFound(err)
	}
	if err := claim.CanView(c, p); err != nil {
		return nil, err
	}
	return c, nil
}

// document loads a document together with its claim, hiding documents of claims p cannot see.
func (s *attachmentService) document(ctx context.Context, p model.Principal, docID string) (*model.Document, *model.Claim, error) {
	if docID == "" {
		return nil, nil, ErrIDRequired
	}
	d, err := s.docs.FindByID(ctx, docID)
	if err != nil {
		return nil, nil, claimNotFound(err)
	}
	c, err := s.claimFor(ctx, p, d.ClaimID)
	if err != nil {
		return nil, nil, err
	}
	return d, c, nil
}

func (s *attachmentService) Upload(ctx context.Context, p model.Principal, claimID string, r io.Reader, fileName, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if err := claim.CheckAttachment(fileName, size); err != nil {
		return nil, err
	}
	c, err := s.claimFor(ctx, p, claimID)
	if err != nil {
		return nil, err
	}
	if err := claim.CanAttach(c, p); err != nil {
		return nil, err
	}

	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName)))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	doc := model.Document{
		ID:          uuid.NewString(),
		FileName:    filepath.Base(fileName),
		ContentType: contentType,
		Size:        size,
		StoragePath: ObjectKey(c.ID, fileName),
		UploadedBy:  p.UserID,
		UploadedAt:  s.now().UTC(),
	}
	if err := claim.Attach(c, doc); err != nil {
		return nil, err
	}

	if _, err := s.store.Put(ctx, doc.StoragePath, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": doc.FileName,
			"claim-id":          c.ID,
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc.ClaimID = c.ID
	stored, err := s.docs.Create(ctx, &doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, doc.StoragePath); delErr != nil {
			s.log.WithFields(logrus.Fields{
				"event":        "attachment_rollback_failed",
				"storage_path": doc.StoragePath,
			}).WithError(delErr).Error("orphaned object left in storage")
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"event":       "attachment_uploaded",
		"claim_id":    c.ID,
		"document_id": stored.ID,
		"size":        stored.Size,
	}).Info("attachment uploaded")
	return stored, nil
}

func (s *attachmentService) List(ctx context.Context, p model.Principal, claimID string) ([]model.Document, error) {
	c, err := s.claimFor(ctx, p, claimID)
	if err != nil {
		return nil, err
	}
	return s.docs.ListByClaim(ctx, c.ID)
}

func (s *attachmentService) Open(ctx context.Context, p model.Principal, docID string) (io.ReadCloser, *model.Document, error) {
	d, _, err := s.document(ctx, p, docID)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, d.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage object: %w", err)
	}
	return rc, d, nil
}

func (s *attachmentService) Link(ctx context.Context, p model.Principal, docID string, expiry time.Duration) (string, error) {
	d, _, err := s.document(ctx, p, docID)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, d.StoragePath, expiry)
}

// Delete removes the object first; if that fails the row stays so the object is not orphaned.
func (s *attachmentService) Delete(ctx context.Context, p model.Principal, docID string) error {
	d, c, err := s.document(ctx, p, docID)
	if err != nil {
		return err
	}
	if err := claim.CanDetach(c, p); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, d.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.docs.Delete(ctx, d.ID)
}
