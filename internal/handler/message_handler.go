package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"wedding-liaison/internal/middleware"
	"wedding-liaison/internal/service/message"
)

type MessageHandler struct {
	messages message.Service
}

func NewMessageHandler(messages message.Service) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	conversationID := c.Params("conversationId")
	if !canAccessConversation(c, conversationID) {
		return middleware.Forbidden("You are not part of this conversation")
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user := middleware.GetCurrentUser(c)
	msg, err := h.messages.Send(c.Context(), conversationID, *user, req.Body)
	if err != nil {
		if errors.Is(err, message.ErrEmptyBody) {
			return middleware.BadRequest("Message body is required")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    msg,
	})
}

func (h *MessageHandler) History(c *fiber.Ctx) error {
	conversationID := c.Params("conversationId")
	if !canAccessConversation(c, conversationID) {
		return middleware.Forbidden("You are not part of this conversation")
	}

	messages, err := h.messages.History(c.Context(), conversationID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    messages,
	})
}

// canAccessConversation checks that the session user is one of the two
// participants encoded in the conversation id (userID_vendorID). Admins may
// read any conversation.
func canAccessConversation(c *fiber.Ctx, conversationID string) bool {
	if middleware.IsAdmin(c) {
		return true
	}
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return false
	}
	for _, part := range strings.Split(conversationID, "_") {
		if part == user.ID {
			return true
		}
	}
	return false
}
