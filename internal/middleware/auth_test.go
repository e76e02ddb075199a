package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"wedding-liaison/internal/config"
	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/middleware"
	"wedding-liaison/internal/recordstore"
	"wedding-liaison/internal/service/session"
)

func newAuthedApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	provider, err := session.NewLocalProvider(recordstore.NewMemoryStore())
	assert.NoError(t, err)
	sessions := session.NewService(provider, &config.Config{
		JWTSecret:     "test-secret",
		SessionExpiry: time.Hour,
	})

	_, token, err := sessions.Login(context.Background(), domain.LoginInput{
		Email:    "client@example.com",
		Password: "password",
		Role:     domain.RoleUser,
	})
	assert.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Get("/p", middleware.AuthRequired(sessions), func(c *fiber.Ctx) error {
		user := middleware.GetCurrentUser(c)
		return c.JSON(fiber.Map{"id": user.ID})
	})
	return app, token
}

func TestAuthRequired(t *testing.T) {
	t.Run("Bearer Header", func(t *testing.T) {
		app, token := newAuthedApp(t)

		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Session Cookie", func(t *testing.T) {
		app, token := newAuthedApp(t)

		req := httptest.NewRequest("GET", "/p", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Missing Token", func(t *testing.T) {
		app, _ := newAuthedApp(t)

		resp, err := app.Test(httptest.NewRequest("GET", "/p", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		app, _ := newAuthedApp(t)

		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		app, token := newAuthedApp(t)

		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", token)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
