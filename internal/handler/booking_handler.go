package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/middleware"
	"wedding-liaison/internal/service/booking"
	"wedding-liaison/internal/service/notification"
)

type BookingHandler struct {
	bookings      booking.Store
	notifications notification.Service
}

func NewBookingHandler(bookings booking.Store, notifications notification.Service) *BookingHandler {
	return &BookingHandler{bookings: bookings, notifications: notifications}
}

// List returns the full collection. Admin only.
func (h *BookingHandler) List(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    h.bookings.All(),
	})
}

func (h *BookingHandler) ListByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if !middleware.CanAccessUserScope(c, userID) {
		return middleware.Forbidden("You cannot access another user's bookings")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    h.bookings.GetBookingsByUserID(userID),
	})
}

// ListByVendor accepts both prefixed and bare vendor identifiers; the store
// matches them against the canonical form.
func (h *BookingHandler) ListByVendor(c *fiber.Ctx) error {
	vendorID := c.Params("vendorId")
	if !middleware.CanAccessVendorScope(c, vendorID) {
		return middleware.Forbidden("You cannot access another vendor's bookings")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    h.bookings.GetBookingsByVendorID(vendorID),
	})
}

func (h *BookingHandler) GetByID(c *fiber.Ctx) error {
	b, err := h.bookings.GetBookingByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return middleware.NotFound("Booking not found")
		}
		return err
	}

	if !middleware.CanAccessUserScope(c, b.UserID) && !middleware.CanAccessVendorScope(c, b.VendorID) {
		return middleware.Forbidden("You cannot access this booking")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    b,
	})
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var draft domain.BookingDraft
	if err := c.BodyParser(&draft); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if draft.VendorID == "" || draft.ServiceName == "" || draft.ServiceDate == "" {
		return middleware.BadRequest("Vendor, service and date are required")
	}

	user := middleware.GetCurrentUser(c)
	// Customers always book for themselves; admins may book on behalf of
	// another user by filling in the draft.
	if user.Role != domain.RoleAdmin || draft.UserID == "" {
		draft.UserID = user.ID
		draft.UserName = user.Name
	}

	created, err := h.bookings.AddBooking(c.Context(), draft)
	if err != nil {
		return err
	}

	h.notifications.NotifyBookingCreated(c.Context(), created.UserID, *created)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    created,
	})
}

func (h *BookingHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	existing, err := h.bookings.GetBookingByID(id)
	if err == nil {
		if !middleware.CanAccessUserScope(c, existing.UserID) && !middleware.CanAccessVendorScope(c, existing.VendorID) {
			return middleware.Forbidden("You cannot modify this booking")
		}
	}

	var changes domain.BookingUpdate
	if err := c.BodyParser(&changes); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.bookings.UpdateBooking(c.Context(), id, changes); err != nil {
		return err
	}

	if existing != nil && changes.Status != nil && *changes.Status == domain.BookingConfirmed {
		user := middleware.GetCurrentUser(c)
		email, name := "", existing.UserName
		if user != nil && user.ID == existing.UserID {
			email, name = user.Email, user.Name
		}
		h.notifications.NotifyBookingConfirmed(c.Context(), existing.UserID, email, name, *existing)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// Refresh reloads the collection from the active source. Admin only.
func (h *BookingHandler) Refresh(c *fiber.Ctx) error {
	if err := h.bookings.Refresh(c.Context()); err != nil {
		return middleware.BadGateway("Failed to refresh bookings")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    h.bookings.All(),
	})
}

// ToggleMode flips between local and remote persistence. Admin only.
func (h *BookingHandler) ToggleMode(c *fiber.Ctx) error {
	remoteMode := h.bookings.ToggleBackendMode()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"backendMode": remoteMode,
	})
}
