package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wedding-liaison/internal/client"
	"wedding-liaison/internal/domain"
)

func TestClient_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/login", r.URL.Path)

			var input domain.LoginInput
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			assert.Equal(t, "client@example.com", input.Email)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    domain.User{ID: "user1", Email: input.Email, Role: domain.RoleUser},
			})
		}))
		defer server.Close()

		c := client.New(server.URL, time.Second)
		user, err := c.Login(ctx, domain.LoginInput{Email: "client@example.com", Password: "password", Role: domain.RoleUser})

		assert.NoError(t, err)
		assert.Equal(t, "user1", user.ID)
	})

	t.Run("Rejected Credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "invalid credentials"})
		}))
		defer server.Close()

		c := client.New(server.URL, time.Second)
		_, err := c.Login(ctx, domain.LoginInput{Email: "client@example.com", Password: "wrong", Role: domain.RoleUser})

		assert.ErrorIs(t, err, client.ErrAuthRejected)
	})

	t.Run("Server Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := client.New(server.URL, time.Second)
		_, err := c.Login(ctx, domain.LoginInput{Email: "client@example.com", Password: "password", Role: domain.RoleUser})

		assert.ErrorIs(t, err, client.ErrServiceUnavailable)
	})

	t.Run("Non-JSON Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html>proxy error</html>"))
		}))
		defer server.Close()

		c := client.New(server.URL, time.Second)
		_, err := c.Login(ctx, domain.LoginInput{Email: "client@example.com", Password: "password", Role: domain.RoleUser})

		assert.ErrorIs(t, err, client.ErrMalformedResponse)
	})

	t.Run("Unreachable Backend", func(t *testing.T) {
		c := client.New("http://127.0.0.1:1", 200*time.Millisecond)
		_, err := c.Login(ctx, domain.LoginInput{Email: "client@example.com", Password: "password", Role: domain.RoleUser})

		assert.ErrorIs(t, err, client.ErrServiceUnavailable)
	})
}

func TestClient_SessionCookiePersists(t *testing.T) {
	ctx := context.Background()

	var sawCookie bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc123"})
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    domain.User{ID: "user1", Role: domain.RoleUser},
			})
		case "/auth/status":
			if cookie, err := r.Cookie("JSESSIONID"); err == nil && cookie.Value == "abc123" {
				sawCookie = true
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    domain.User{ID: "user1", Role: domain.RoleUser},
			})
		}
	}))
	defer server.Close()

	c := client.New(server.URL, time.Second)
	_, err := c.Login(ctx, domain.LoginInput{Email: "client@example.com", Password: "password", Role: domain.RoleUser})
	assert.NoError(t, err)

	_, err = c.Status(ctx)
	assert.NoError(t, err)
	assert.True(t, sawCookie)
}

func TestClient_ListBookingsByVendor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings/vendor/vendor1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]domain.Booking{{ID: "booking1", VendorID: "vendor1"}})
	}))
	defer server.Close()

	c := client.New(server.URL, time.Second)

	// Bare vendor ids are normalized before they reach the wire.
	bookings, err := c.ListBookingsByVendor(context.Background(), "1")

	assert.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.Equal(t, "booking1", bookings[0].ID)
}
