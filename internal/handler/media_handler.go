package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wedding-liaison/internal/middleware"
	"wedding-liaison/internal/service/media"
)

const maxPortfolioFileSize = 10 * 1024 * 1024

type MediaHandler struct {
	media media.Service
}

func NewMediaHandler(m media.Service) *MediaHandler {
	return &MediaHandler{media: m}
}

func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	vendorID := c.Params("vendorId")
	if !middleware.CanAccessVendorScope(c, vendorID) {
		return middleware.Forbidden("You cannot modify another vendor's portfolio")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}
	if fileHeader.Size > maxPortfolioFileSize {
		return middleware.BadRequest("File exceeds the 10MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read uploaded file")
	}
	defer file.Close()

	item, err := h.media.Upload(
		c.Context(),
		vendorID,
		fileHeader.Filename,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
		c.FormValue("caption"),
		file,
	)
	if err != nil {
		if errors.Is(err, media.ErrUnavailable) {
			return middleware.BadGateway("Media storage is temporarily unavailable")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    item,
	})
}

// ListByVendor is public: portfolios are part of the vendor's storefront.
func (h *MediaHandler) ListByVendor(c *fiber.Ctx) error {
	items, err := h.media.ListByVendor(c.Context(), c.Params("vendorId"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    items,
	})
}

func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	vendorID := c.Params("vendorId")
	if !middleware.CanAccessVendorScope(c, vendorID) {
		return middleware.Forbidden("You cannot modify another vendor's portfolio")
	}

	if err := h.media.Delete(c.Context(), vendorID, c.Params("itemId")); err != nil {
		if errors.Is(err, media.ErrNotFound) {
			return middleware.NotFound("Portfolio item not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
