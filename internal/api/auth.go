package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token pair. It does not install or
// persist the tokens; the session store owns that.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the current user. Goes through the refresh-on-401 path.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.getJSON(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
