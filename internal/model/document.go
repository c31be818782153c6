package model

import "time"

// Document is a supporting file attached to a claim.
// FileName is the name the uploader supplied; StoragePath is the object key in storage.
type Document struct {
	ID          string    `json:"id"`
	ClaimID     string    `json:"claim_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"storage_path"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
