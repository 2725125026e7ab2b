package handler

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"fleetmetrics/internal/service"
)

type createDocumentRequest struct {
	Title string `json:"title"`
}

// verificationRequest uses a *bool so a missing verified field is
// distinguishable from an explicit false and rejected as malformed.
type verificationRequest struct {
	Verified   *bool   `json:"verified"`
	VerifiedBy *string `json:"verified_by"`
}

// CreateDocument handles POST /documents.
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		doc, err := svc.Create(c.UserContext(), req.Title)
		if err != nil {
			if errors.Is(err, service.ErrTitleRequired) {
				return writeError(c, fiber.StatusBadRequest, "TITLE_REQUIRED", "title is required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListDocuments handles GET /documents with limit & offset.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetDocument handles GET /documents/:id.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseDocumentID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(doc)
	}
}

// SetDocumentVerification handles PUT /documents/:id and returns 204 on success.
func SetDocumentVerification(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseDocumentID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req verificationRequest
		if err := c.BodyParser(&req); err != nil || req.Verified == nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "verified field is required")
		}

		if err := svc.SetVerification(c.UserContext(), id, *req.Verified, req.VerifiedBy); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UploadDocumentFile handles POST /documents/:id/file (multipart/form-data,
// field name: file).
func UploadDocumentFile(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseDocumentID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
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

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.AttachFile(c.UserContext(), id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(doc)
	}
}

// DownloadDocumentFile handles GET /documents/:id/file, streaming the
// attachment from object storage.
func DownloadDocumentFile(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseDocumentID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rc, info, err := svc.OpenFile(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrNoFile) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document file not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		// int(info.Size) would truncate past MaxInt on 32-bit builds.
		size := -1
		if info.Size <= math.MaxInt {
			size = int(info.Size)
		}
		return c.SendStream(rc, size)
	}
}

func parseDocumentID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
