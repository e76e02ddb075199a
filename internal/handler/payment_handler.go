package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"wedding-liaison/internal/client"
	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/middleware"
	"wedding-liaison/internal/service/booking"
	"wedding-liaison/internal/service/email"
	"wedding-liaison/internal/service/payment"
)

type PaymentHandler struct {
	payments payment.Service
	bookings booking.Store
	emails   email.Service
}

func NewPaymentHandler(payments payment.Service, bookings booking.Store, emails email.Service) *PaymentHandler {
	return &PaymentHandler{payments: payments, bookings: bookings, emails: emails}
}

func (h *PaymentHandler) Process(c *fiber.Ctx) error {
	var req domain.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user := middleware.GetCurrentUser(c)
	if user.Role != domain.RoleAdmin {
		req.UserID = user.ID
	}

	if b, err := h.bookings.GetBookingByID(req.BookingID); err == nil {
		if !middleware.CanAccessUserScope(c, b.UserID) {
			return middleware.Forbidden("You cannot pay for another user's booking")
		}
		if req.VendorID == "" {
			req.VendorID = b.VendorID
		}
		if req.Amount == 0 {
			req.Amount = b.Amount
		}
	}

	result, err := h.payments.Process(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidRequest):
			return middleware.BadRequest("Invalid payment request")
		case errors.Is(err, client.ErrServiceUnavailable), errors.Is(err, client.ErrMalformedResponse):
			return middleware.BadGateway("Payment service is temporarily unavailable")
		default:
			return err
		}
	}

	if result.Status == domain.PaymentCompleted && user.Email != "" {
		go func() {
			if err := h.emails.SendPaymentReceipt(context.Background(), user.Email, user.Name, result.Amount, result.TransactionID); err != nil {
				fmt.Printf("Failed to send payment receipt: %v\n", err)
			}
		}()
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": result.Status == domain.PaymentCompleted,
		"data":    result,
	})
}

func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.payments.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			return middleware.NotFound("Payment not found")
		}
		return err
	}

	if !middleware.CanAccessUserScope(c, p.UserID) && !middleware.CanAccessVendorScope(c, p.VendorID) {
		return middleware.Forbidden("You cannot access this payment")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    p,
	})
}

func (h *PaymentHandler) GetByBookingID(c *fiber.Ctx) error {
	p, err := h.payments.GetByBookingID(c.Context(), c.Params("bookingId"))
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			return middleware.NotFound("No payment recorded for this booking")
		}
		return err
	}

	if !middleware.CanAccessUserScope(c, p.UserID) && !middleware.CanAccessVendorScope(c, p.VendorID) {
		return middleware.Forbidden("You cannot access this payment")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    p,
	})
}

func (h *PaymentHandler) ListByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if !middleware.CanAccessUserScope(c, userID) {
		return middleware.Forbidden("You cannot access another user's payments")
	}

	payments, err := h.payments.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    payments,
	})
}
