package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"wedding-liaison/internal/client"
	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/middleware"
	"wedding-liaison/internal/service/email"
	"wedding-liaison/internal/service/session"
)

type AuthHandler struct {
	sessions session.Service
	emails   email.Service
}

func NewAuthHandler(sessions session.Service, emails email.Service) *AuthHandler {
	return &AuthHandler{sessions: sessions, emails: emails}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Email == "" || input.Password == "" {
		return middleware.BadRequest("Email and password are required")
	}
	if input.Role == "" {
		input.Role = domain.RoleUser
	}

	user, token, err := h.sessions.Login(c.Context(), input)
	if err != nil {
		return mapAuthError(err)
	}

	setSessionCookie(c, token)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    user,
		"token":   token,
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return middleware.BadRequest("Name, email and password are required")
	}
	if input.Role == "" {
		input.Role = domain.RoleUser
	}
	if input.Role == domain.RoleVendor && input.Business == nil {
		return middleware.BadRequest("Vendor registrations require business details")
	}

	user, token, err := h.sessions.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, session.ErrEmailExists) {
			return middleware.Conflict("Email already registered")
		}
		return mapAuthError(err)
	}

	go func() {
		if err := h.emails.SendWelcomeEmail(context.Background(), user.Email, user.Name); err != nil {
			fmt.Printf("Failed to send welcome email: %v\n", err)
		}
	}()

	setSessionCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    user,
		"token":   token,
	})
}

// Logout clears the session only when the provider confirms; otherwise the
// session is retained and the caller sees the failure.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := middleware.GetSessionToken(c)

	if err := h.sessions.Logout(c.Context(), token); err != nil {
		if errors.Is(err, session.ErrLogoutFailed) {
			return middleware.BadGateway("Logout failed, please try again")
		}
		return middleware.Unauthorized("Invalid session")
	}

	clearSessionCookie(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// Status reports the current session, mirroring the session-recovery check a
// client performs on startup.
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookie)
	if token == "" {
		token = bearerToken(c)
	}

	user := h.sessions.CurrentUser(token)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": user != nil,
		"data":    user,
		"loading": h.sessions.Loading(),
	})
}

func bearerToken(c *fiber.Ctx) string {
	const prefix = "Bearer "
	header := c.Get("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials), errors.Is(err, client.ErrAuthRejected):
		return middleware.Unauthorized("Invalid email or password")
	case errors.Is(err, session.ErrInvalidRole):
		return middleware.BadRequest("Invalid role")
	case errors.Is(err, client.ErrServiceUnavailable), errors.Is(err, client.ErrMalformedResponse):
		return middleware.BadGateway("Authentication service is temporarily unavailable")
	default:
		return err
	}
}

func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(24 * time.Hour),
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(-time.Hour),
	})
}
