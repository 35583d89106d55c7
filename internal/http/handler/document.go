package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"gedapi/internal/service"
)

// paramID parses the :id route parameter as a positive integer.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListDocuments handles GET /documents with limit & offset.
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := docSvc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// UploadDocument handles POST /documents (multipart/form-data).
// Fields: file, category_id, description (optional).
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		categoryID, err := strconv.ParseInt(c.FormValue("category_id"), 10, 64)
		if err != nil || categoryID <= 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_CATEGORY_ID", "category_id must be a positive integer")
		}

		f, err := fh.Open()
		if err != nil {
			// The transport delivered a file part we cannot read; surface the
			// condition instead of swallowing it.
			return writeError(c, fiber.StatusBadRequest, "TRANSPORT_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := docSvc.Upload(c.UserContext(), f, fh.Filename, categoryID, c.FormValue("description"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnsupportedType):
				return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE",
					"allowed file types: pdf, doc, docx, xls, xlsx, jpg, jpeg, png")
			case errors.Is(err, service.ErrUnknownCategory):
				return writeError(c, fiber.StatusUnprocessableEntity, "UNKNOWN_CATEGORY", "category does not exist")
			case errors.Is(err, service.ErrReaderNil):
				return writeError(c, fiber.StatusBadRequest, "TRANSPORT_ERROR", "upload transport failed")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument handles GET /documents/:id.
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(doc)
	}
}

// DownloadDocument handles GET /documents/:id/download, streaming the artifact
// with the uploader's original filename.
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rc, doc, err := docSvc.Download(c.UserContext(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			case errors.Is(err, service.ErrArtifactMissing):
				return writeError(c, fiber.StatusGone, "ARTIFACT_MISSING", "the stored file for this document is missing")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		c.Attachment(doc.OriginalName)
		return c.SendStream(rc)
	}
}

// DeleteDocument handles DELETE /documents/:id. The metadata row removal is the
// primary outcome; the response reports whether the artifact was removed too.
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := docSvc.Delete(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrInvalidID) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}
