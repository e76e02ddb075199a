package handler

import (
	"github.com/gofiber/fiber/v2"

	"wedding-liaison/internal/middleware"
	"wedding-liaison/internal/service/notification"
)

type NotificationHandler struct {
	notifications notification.Service
}

func NewNotificationHandler(notifications notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// All inbox routes are scoped to the session user; there is no cross-user
// notification access, not even for admins.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	notifications, err := h.notifications.List(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    notifications,
	})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	count, err := h.notifications.UnreadCount(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"count": count},
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	if err := h.notifications.MarkAsRead(c.Context(), user.ID, c.Params("id")); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	if err := h.notifications.MarkAllAsRead(c.Context(), user.ID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
