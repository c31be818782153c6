package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"claimflow/internal/service"
)

const (
	defaultLinkExpiry = 15 * time.Minute
	maxLinkExpiry     = 24 * time.Hour
)

// UploadDocument godoc
// @Summary  Attach a supporting document to a claim
// @Tags     documents
// @Accept   multipart/form-data
// @Produce  json
// @Param    id   path     string true "claim id"
// @Param    file formData file   true "document (pdf, png, jpg, doc(x), xls(x), csv, txt; max 20 MB)"
// @Success  201 {object} model.Document
// @Failure  400 {object} errorPayload
// @Failure  413 {object} errorPayload
// @Router   /api/v1/claims/{id}/documents [post]
func UploadDocument(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		claimID, ok, err := idParam(c)
		if !ok {
			return err
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		// Generic part types are re-derived from the file extension.
		ct := fh.Header.Get("Content-Type")
		if ct == "application/octet-stream" {
			ct = ""
		}

		doc, err := svc.Upload(c.UserContext(), p, claimID, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListDocuments godoc
// @Summary  List a claim's documents
// @Tags     documents
// @Produce  json
// @Param    id path string true "claim id"
// @Success  200 {object} map[string]interface{}
// @Router   /api/v1/claims/{id}/documents [get]
func ListDocuments(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		claimID, ok, err := idParam(c)
		if !ok {
			return err
		}
		docs, err := svc.List(c.UserContext(), p, claimID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"data": docs})
	}
}

// DownloadDocument godoc
// @Summary  Stream a document
// @Tags     documents
// @Produce  octet-stream
// @Param    id path string true "document id"
// @Success  200 {file} file
// @Failure  404 {object} errorPayload
// @Router   /api/v1/documents/{id} [get]
func DownloadDocument(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		rc, doc, err := svc.Open(c.UserContext(), p, id)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
		// fasthttp closes rc once the body is written.
		return c.SendStream(rc, int(doc.Size))
	}
}

// DocumentLink godoc
// @Summary  Pre-signed download URL for a document
// @Tags     documents
// @Produce  json
// @Param    id     path  string true  "document id"
// @Param    expiry query string false "duration, e.g. 15m (max 24h)"
// @Success  200 {object} map[string]interface{}
// @Router   /api/v1/documents/{id}/link [get]
func DocumentLink(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		expiry := defaultLinkExpiry
		if s := c.Query("expiry"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil || d <= 0 || d > maxLinkExpiry {
				return writeError(c, fiber.StatusBadRequest, "INVALID_EXPIRY", "expiry must be a duration up to 24h")
			}
			expiry = d
		}
		url, err := svc.Link(c.UserContext(), p, id, expiry)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"url": url, "expires_in": int(expiry.Seconds())})
	}
}

// DeleteDocument godoc
// @Summary  Remove a document from a Draft or Rejected claim
// @Tags     documents
// @Param    id path string true "document id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /api/v1/documents/{id} [delete]
func DeleteDocument(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		if err := svc.Delete(c.UserContext(), p, id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
