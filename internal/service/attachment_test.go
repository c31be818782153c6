package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"claimflow/internal/claim"
	"claimflow/internal/model"
	"claimflow/internal/repository"
	repoMocks "claimflow/internal/repository/mocks"
	"claimflow/internal/storage"
	storageMocks "claimflow/internal/storage/mocks"
)

func newAttachmentService(t *testing.T) (*attachmentService, *storageMocks.MockStorage, *repoMocks.MockDocumentRepository, *repoMocks.MockClaimRepository) {
	t.Helper()
	st := new(storageMocks.MockStorage)
	docs := new(repoMocks.MockDocumentRepository)
	claims := new(repoMocks.MockClaimRepository)
	log, _ := test.NewNullLogger()
	svc := NewAttachmentService(st, docs, claims, log).(*attachmentService)
	svc.now = func() time.Time { return fixedNow }
	return svc, st, docs, claims
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("claim-1", "Timesheet.PDF")
	assert.True(t, strings.HasPrefix(key, "claims/claim-1/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotEqual(t, key, ObjectKey("claim-1", "Timesheet.PDF"))
}

func TestAttachmentService_Upload(t *testing.T) {
	ctx := context.Background()
	content := []byte("%PDF-1.4 timesheet")

	tests := []struct {
		name        string
		actor       model.Principal
		fileName    string
		contentType string
		size        int64
		reader      io.Reader
		setupMocks  func(st *storageMocks.MockStorage, docs *repoMocks.MockDocumentRepository, claims *repoMocks.MockClaimRepository)
		wantErr     error
		wantErrText string
		check       func(t *testing.T, d *model.Document)
	}{
		{
			name:     "success derives content type",
			actor:    lecturer,
			fileName: "timesheet.pdf",
			size:     int64(len(content)),
			reader:   bytes.NewReader(content),
			setupMocks: func(st *storageMocks.MockStorage, docs *repoMocks.MockDocumentRepository, claims *repoMocks.MockClaimRepository) {
				claims.On("FindByID", ctx, "claim-1").Return(storedClaim(model.StatusDraft), nil)
				st.On("Put", ctx, mock.MatchedBy(func(k string) bool { return strings.HasPrefix(k, "claims/claim-1/") }), mock.Anything,
					mock.MatchedBy(func(o storage.PutObjectOptions) bool {
						return o.ContentType == "application/pdf" && o.Metadata["original-filename"] == "timesheet.pdf" &&
							o.Metadata["claim-id"] == "claim-1"
					})).Return(storage.ObjectInfo{}, nil)
				docs.On("Create", ctx, mock.MatchedBy(func(d *model.Document) bool {
					return d.ClaimID == "claim-1" && d.UploadedBy == "u1" && d.UploadedAt.Equal(fixedNow)
				})).Return(&model.Document{ID: "d1", ClaimID: "claim-1", FileName: "timesheet.pdf"}, nil)
			},
			check: func(t *testing.T, d *model.Document) {
				assert.Equal(t, "d1", d.ID)
			},
		},
		{
			name:     "pending claims still accept documents",
			actor:    lecturer,
			fileName: "hours.xlsx",
			size:     10,
			reader:   strings.NewReader("0123456789"),
			setupMocks: func(st *storageMocks.MockStorage, docs *repoMocks.MockDocumentRepository, claims *repoMocks.MockClaimRepository) {
				claims.On("FindByID", ctx, "claim-1").Return(storedClaim(model.StatusPending), nil)
				st.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
				docs.On("Create", ctx, mock.Anything).Return(&model.Document{ID: "d2"}, nil)
			},
			check: func(t *testing.T, d *model.Document) {
				assert.Equal(t, "d2", d.ID)
			},
		},
		{
			name:       "nil reader",
			actor:      lecturer,
			fileName:   "a.pdf",
			size:       1,
			setupMocks: func(*storageMocks.MockStorage, *repoMocks.MockDocumentRepository, *repoMocks.MockClaimRepository) {},
			wantErr:    ErrReaderNil,
		},
		{
			name:       "disallowed extension",
			actor:      lecturer,
			fileName:   "run.exe",
			size:       1,
			reader:     strings.NewReader("x"),
			setupMocks: func(*storageMocks.MockStorage, *repoMocks.MockDocumentRepository, *repoMocks.MockClaimRepository) {},
			wantErr:    claim.ErrUnsupportedFileType,
		},
		{
			name:       "too large",
			actor:      lecturer,
			fileName:   "big.pdf",
			size:       claim.MaxAttachmentSize + 1,
			reader:     strings.NewReader("x"),
			setupMocks: func(*storageMocks.MockStorage, *repoMocks.MockDocumentRepository, *repoMocks.MockClaimRepository) {},
			wantErr:    claim.ErrFileTooLarge,
		},
		{
			name:     "someone else's claim",
			actor:    otherLect,
			fileName: "a.pdf",
			size:     1,
			reader:   strings.NewReader("x"),
			setupMocks: func(st *storageMocks.MockStorage, docs *repoMocks.MockDocumentRepository, claims *repoMocks.MockClaimRepository) {
				claims.On("FindByID", ctx, "claim-1").Return(storedClaim(model.StatusDraft), nil)
			},
			wantErr: claim.ErrNotFound,
		},
		{
			name:     "reviewer cannot upload",
			actor:    coordinator,
			fileName: "a.pdf",
			size:     1,
			reader:   strings.NewReader("x"),
			setupMocks: func(st *storageMocks.MockStorage, docs *repoMocks.MockDocumentRepository, claims *repoMocks.MockClaimRepository) {
				claims.On("FindByID", ctx, "claim-1").Return(storedClaim(model.StatusPending), nil)
			},
			wantErr: claim.ErrNotFound,
		},
		{
			name:     "storage failure",
			actor:    lecturer,
			fileName: "a.pdf",
			size:     1,
			reader:   strings.NewReader("x"),
			setupMocks: func(st *storageMocks.MockStorage, docs *repoMocks.MockDocumentRepository, claims *repoMocks.MockClaimRepository) {
				claims.On("FindByID", ctx, "claim-1").Return(storedClaim(model.StatusDraft), nil)
				st.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("bucket gone"))
			},
			wantErrText: "upload to storage: bucket gone",
		},
		{
			name:     "db failure rolls back object",
			actor:    lecturer,
			fileName: "a.pdf",
			size:     1,
			reader:   strings.NewReader("x"),
			setupMocks: func(st *storageMocks.MockStorage, docs *repoMocks.MockDocumentRepository, claims *repoMocks.MockClaimRepository) {
				claims.On("FindByID", ctx, "claim-1").Return(storedClaim(model.StatusDraft), nil)
				st.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
				docs.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert failed"))
				st.On("Delete", ctx, mock.MatchedBy(func(k string) bool { return strings.HasPrefix(k, "claims/claim-1/") })).Return(nil)
			},
			wantErrText: "db save failed: insert failed",
		},
		{
			name:     "rollback failure is reported",
			actor:    lecturer,
			fileName: "a.pdf",
			size:     1,
			reader:   strings.NewReader("x"),
			setupMocks: func(st *storageMocks.MockStorage, docs *repoMocks.MockDocumentRepository, claims *repoMocks.MockClaimRepository) {
				claims.On("FindByID", ctx, "claim-1").Return(storedClaim(model.StatusDraft), nil)
				st.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
				docs.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert failed"))
				st.On("Delete", ctx, mock.Anything).Return(errors.New("timeout"))
			},
			wantErrText: "rollback delete failed: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st, docs, claims := newAttachmentService(t)
			tt.setupMocks(st, docs, claims)

			d, err := svc.Upload(ctx, tt.actor, "claim-1", tt.reader, tt.fileName, tt.contentType, tt.size)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, d)
			case tt.wantErrText != "":
				assert.ErrorContains(t, err, tt.wantErrText)
				assert.Nil(t, d)
			default:
				require.NoError(t, err)
				tt.check(t, d)
			}
			st.AssertExpectations(t)
			docs.AssertExpectations(t)
			claims.AssertExpectations(t)
		})
	}
}

func TestAttachmentService_Upload_ApprovedClaimIsClosed(t *testing.T) {
	svc, _, _, claims := newAttachmentService(t)
	claims.On("FindByID", mock.Anything, "claim-1").Return(storedClaim(model.StatusApprovedByManager), nil)

	_, err := svc.Upload(context.Background(), lecturer, "claim-1", strings.NewReader("x"), "a.pdf", "", 1)

	var illegal *claim.IllegalTransitionError
	assert.ErrorAs(t, err, &illegal)
}

func TestAttachmentService_Open(t *testing.T) {
	ctx := context.Background()
	doc := &model.Document{ID: "d1", ClaimID: "claim-1", StoragePath: "claims/claim-1/x.pdf"}

	t.Run("reviewer streams document", func(t *testing.T) {
		svc, st, docs, claims := newAttachmentService(t)
		docs.On("FindByID", ctx, "d1").Return(doc, nil)
		claims.On("FindByID", ctx, "claim-1").Return(storedClaim(model.StatusPending), nil)
		st.On("Get", ctx, "claims/claim-1/x.pdf").Return(io.NopCloser(strings.NewReader("pdf")), storage.ObjectInfo{}, nil)

		rc, d, err := svc.Open(ctx, manager, "d1")
		require.NoError(t, err)
		defer rc.Close()
		body, _ := io.ReadAll(rc)
		assert.Equal(t, "pdf", string(body))
		assert.Equal(t, "d1", d.ID)
	})

	t.Run("unknown document", func(t *testing.T) {
		svc, _, docs, _ := newAttachmentService(t)
		docs.On("FindByID", ctx, "nope").Return(nil, repository.ErrNotFound)

		_, _, err := svc.Open(ctx, manager, "nope")
		assert.ErrorIs(t, err, claim.ErrNotFound)
	})

	t.Run("foreign lecturer", func(t *testing.T) {
		svc, _, docs, claims := newAttachmentService(t)
		docs.On("FindByID", ctx, "d1").Return(doc, nil)
		claims.On("FindByID", ctx, "claim-1").Return(storedClaim(model.StatusPending), nil)

		_, _, err := svc.Open(ctx, otherLect, "d1")
		assert.ErrorIs(t, err, claim.ErrNotFound)
	})
}

func TestAttachmentService_Link(t *testing.T) {
	ctx := context.Background()
	svc, st, docs, claims := newAttachmentService(t)
	docs.On("FindByID", ctx, "d1").Return(&model.Document{ID: "d1", ClaimID: "claim-1", StoragePath: "claims/claim-1/x.pdf"}, nil)
	claims.On("FindByID", ctx, "claim-1").Return(storedClaim(model.StatusDraft), nil)
	st.On("PresignGet", ctx, "claims/claim-1/x.pdf", 15*time.Minute).Return("https://minio.local/x?sig", nil)

	url, err := svc.Link(ctx, lecturer, "d1", 15*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, "https://minio.local/x?sig", url)
}

func TestAttachmentService_Delete(t *testing.T) {
	ctx := context.Background()
	doc := &model.Document{ID: "d1", ClaimID: "claim-1", StoragePath: "claims/claim-1/x.pdf"}

	tests := []struct {
		name       string
		actor      model.Principal
		status     model.ClaimStatus
		setupMocks func(st *storageMocks.MockStorage, docs *repoMocks.MockDocumentRepository)
		wantErr    bool
		wantAs     bool
	}{
		{
			name:   "owner deletes from draft",
			actor:  lecturer,
			status: model.StatusDraft,
			setupMocks: func(st *storageMocks.MockStorage, docs *repoMocks.MockDocumentRepository) {
				st.On("Delete", ctx, "claims/claim-1/x.pdf").Return(nil)
				docs.On("Delete", ctx, "d1").Return(nil)
			},
		},
		{
			name:   "storage failure keeps the row",
			actor:  lecturer,
			status: model.StatusRejected,
			setupMocks: func(st *storageMocks.MockStorage, docs *repoMocks.MockDocumentRepository) {
				st.On("Delete", ctx, "claims/claim-1/x.pdf").Return(errors.New("denied"))
			},
			wantErr: true,
		},
		{
			name:       "submitted claim is locked",
			actor:      lecturer,
			status:     model.StatusPending,
			setupMocks: func(*storageMocks.MockStorage, *repoMocks.MockDocumentRepository) {},
			wantErr:    true,
			wantAs:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st, docs, claims := newAttachmentService(t)
			docs.On("FindByID", ctx, "d1").Return(doc, nil)
			claims.On("FindByID", ctx, "claim-1").Return(storedClaim(tt.status), nil)
			tt.setupMocks(st, docs)

			err := svc.Delete(ctx, tt.actor, "d1")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantAs {
					var illegal *claim.IllegalTransitionError
					assert.ErrorAs(t, err, &illegal)
				}
			} else {
				assert.NoError(t, err)
			}
			st.AssertExpectations(t)
			docs.AssertExpectations(t)
		})
	}
}
