package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/service/session"
)

const (
	UserContextKey  = "user"
	TokenContextKey = "session_token"

	// SessionCookie is the fallback token carrier for browser clients.
	SessionCookie = "wl_session"
)

func AuthRequired(sessions session.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Missing session token",
			})
		}

		user := sessions.CurrentUser(token)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired session",
			})
		}

		c.Locals(UserContextKey, user)
		c.Locals(TokenContextKey, token)

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Cookies(SessionCookie)
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetSessionToken(c *fiber.Ctx) string {
	token, ok := c.Locals(TokenContextKey).(string)
	if !ok {
		return ""
	}
	return token
}
