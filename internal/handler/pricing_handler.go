package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/middleware"
	"wedding-liaison/internal/service/pricing"
)

type PricingHandler struct {
	pricing pricing.Service
}

func NewPricingHandler(p pricing.Service) *PricingHandler {
	return &PricingHandler{pricing: p}
}

// Quote computes a price breakdown from the rate table. Admin only.
func (h *PricingHandler) Quote(c *fiber.Ctx) error {
	var input domain.QuoteInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	quote, err := h.pricing.Quote(input)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownServiceType) {
			return middleware.BadRequest("Unknown service type")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    quote,
	})
}
