package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"wedding-liaison/internal/domain"
)

// ErrAuthRejected is returned when the backend answers but refuses the
// credentials or session.
var ErrAuthRejected = errors.New("authentication rejected by backend")

func (c *Client) Login(ctx context.Context, input domain.LoginInput) (*domain.User, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/auth/login", input, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, ErrAuthRejected
	}
	return decodeUser(env.Data)
}

func (c *Client) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/auth/register", input, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, ErrAuthRejected
	}
	return decodeUser(env.Data)
}

func (c *Client) Logout(ctx context.Context) error {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, &env); err != nil {
		return err
	}
	if !env.Success {
		return ErrAuthRejected
	}
	return nil
}

// Status asks the backend whether the cookie jar still holds a live session.
func (c *Client) Status(ctx context.Context) (*domain.User, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/auth/status", nil, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, ErrAuthRejected
	}
	return decodeUser(env.Data)
}

func decodeUser(raw json.RawMessage) (*domain.User, error) {
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, ErrMalformedResponse
	}
	return &user, nil
}
