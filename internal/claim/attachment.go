package claim

import (
	"errors"
	"path/filepath"
	"strings"

	"claimflow/internal/model"
)

// MaxAttachmentSize is the largest supporting document accepted, in bytes.
const MaxAttachmentSize int64 = 20 * 1024 * 1024

var (
	ErrEmptyFile           = errors.New("file is empty")
	ErrFileTooLarge        = errors.New("file exceeds 20 MB")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".png": {}, ".jpg": {}, ".jpeg": {},
	".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {},
	".csv": {}, ".txt": {},
}

// attachableFrom lists the states in which the owner may add documents.
var attachableFrom = []model.ClaimStatus{model.StatusDraft, model.StatusRejected, model.StatusPending}

// CheckAttachment enforces the extension allow-list and size bounds.
func CheckAttachment(fileName string, size int64) error {
	if size <= 0 {
		return ErrEmptyFile
	}
	if size > MaxAttachmentSize {
		return ErrFileTooLarge
	}
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(fileName))]; !ok {
		return ErrUnsupportedFileType
	}
	return nil
}

// CanAttach checks that p may add documents to c.
func CanAttach(c *model.Claim, p model.Principal) error {
	if p.Role != model.RoleLecturer || c.ContractorID != p.UserID {
		return ErrNotFound
	}
	if !hasStatus(attachableFrom, c.Status) {
		return &IllegalTransitionError{Action: "attach", From: c.Status, Required: attachableFrom}
	}
	return nil
}

// CanDetach checks that p may remove documents from c.
func CanDetach(c *model.Claim, p model.Principal) error {
	if p.Role != model.RoleLecturer || c.ContractorID != p.UserID {
		return ErrNotFound
	}
	if !c.Status.IsEditable() {
		return &IllegalTransitionError{Action: "detach", From: c.Status, Required: rules[ActionEdit].from}
	}
	return nil
}

// Attach appends d to c's documents after checking it.
func Attach(c *model.Claim, d model.Document) error {
	if err := CheckAttachment(d.FileName, d.Size); err != nil {
		return err
	}
	d.ClaimID = c.ID
	c.Attachments = append(c.Attachments, d)
	return nil
}
