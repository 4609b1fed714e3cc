package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"
)

// TokenStore persists the token pair. The sqlite-backed credentials repo
// implements it; tests use an in-memory fake.
type TokenStore interface {
	Save(access, refresh string) error
	Clear() error
}

// Client talks to the MyJob backend under its /api prefix. It attaches the
// bearer token to every request and performs exactly one token refresh when
// an authenticated request comes back 401.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenStore

	mu           sync.Mutex
	accessToken  string
	refreshToken string

	// refreshMu is held across the whole token exchange so concurrent 401s
	// produce a single /auth/refresh call.
	refreshMu sync.Mutex
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// SetTokens installs the pair used for outgoing requests. It does not
// persist; persistence stays with login/refresh/logout flows.
func (c *Client) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

func (c *Client) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

func (c *Client) RefreshToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshToken
}

// ClearTokens drops the in-memory pair and wipes the store.
func (c *Client) ClearTokens() {
	c.mu.Lock()
	c.accessToken = ""
	c.refreshToken = ""
	c.mu.Unlock()
	if c.tokens != nil {
		_ = c.tokens.Clear()
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if tok := c.AccessToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return &AuthError{Detail: detailOf(data)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{Status: resp.StatusCode, Detail: detailOf(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// detailOf pulls the backend's {"detail": "..."} message, if any.
func detailOf(data []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Detail
}

// authed runs an authenticated request; on a 401 it refreshes the access
// token once and retries the original intent. The rebuild func re-issues
// the request so multipart bodies can be rebuilt for the retry.
func (c *Client) authed(rebuild func() error) error {
	stale := c.AccessToken()
	err := rebuild()
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return err
	}
	if refreshErr := c.refreshAfter(stale); refreshErr != nil {
		return err
	}
	return rebuild()
}

// refreshAfter exchanges the refresh token unless another request already
// replaced the pair the failed request went out with. Under rotation the
// refresh token is consumed on first use; replaying the exchange would get
// rejected and purge the freshly installed pair.
func (c *Client) refreshAfter(stale string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	if c.AccessToken() != stale {
		return nil
	}
	return c.refreshOnce()
}

// Refresh forces a token exchange outside the 401 path, for callers that
// already know the access token is expired.
func (c *Client) Refresh() error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	return c.refreshOnce()
}

// refreshOnce exchanges the stored refresh token for a new pair. On success
// the pair is persisted; on failure both tokens are purged. There is no
// refresh-of-refresh: the refresh call itself goes out without retry.
func (c *Client) refreshOnce() error {
	refresh := c.RefreshToken()
	if refresh == "" {
		c.ClearTokens()
		return &AuthError{Detail: "no refresh token"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.httpc.Timeout)
	defer cancel()

	var pair TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": refresh}, &pair)
	if err != nil {
		c.ClearTokens()
		return err
	}

	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	if c.tokens != nil {
		if err := c.tokens.Save(pair.AccessToken, pair.RefreshToken); err != nil {
			return fmt.Errorf("persist tokens: %w", err)
		}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.authed(func() error {
		return c.do(ctx, http.MethodGet, path, nil, out)
	})
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	return c.authed(func() error {
		return c.do(ctx, http.MethodPost, path, body, out)
	})
}

func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	return c.authed(func() error {
		return c.do(ctx, http.MethodPut, path, body, out)
	})
}

func (c *Client) deleteJSON(ctx context.Context, path string) error {
	return c.authed(func() error {
		return c.do(ctx, http.MethodDelete, path, nil, nil)
	})
}

// postMultipart uploads a file (plus optional extra form fields) and decodes
// the JSON response. Rebuilt from scratch on the refresh retry.
func (c *Client) postMultipart(ctx context.Context, path, fieldName, filename string, content []byte, fields map[string]string, out any) error {
	return c.authed(func() error {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile(fieldName, filename)
		if err != nil {
			return fmt.Errorf("build multipart: %w", err)
		}
		if _, err := part.Write(content); err != nil {
			return fmt.Errorf("build multipart: %w", err)
		}
		for k, v := range fields {
			if err := w.WriteField(k, v); err != nil {
				return fmt.Errorf("build multipart: %w", err)
			}
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("build multipart: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", w.FormDataContentType())
		return c.send(req, out)
	})
}
