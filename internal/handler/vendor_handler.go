package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/middleware"
	"wedding-liaison/internal/service/vendor"
)

type VendorHandler struct {
	vendors vendor.Service
}

func NewVendorHandler(vendors vendor.Service) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

// List is public: browsing the catalog does not require a session.
func (h *VendorHandler) List(c *fiber.Ctx) error {
	filter := domain.VendorFilter{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
		SortBy:   c.Query("sortBy"),
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    h.vendors.List(c.Context(), filter),
	})
}

func (h *VendorHandler) GetByID(c *fiber.Ctx) error {
	v, err := h.vendors.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, vendor.ErrNotFound) {
			return middleware.NotFound("Vendor not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    v,
	})
}

// Refresh drops the cached catalog so the next listing refetches. Admin only.
func (h *VendorHandler) Refresh(c *fiber.Ctx) error {
	h.vendors.Refresh(c.Context())
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
