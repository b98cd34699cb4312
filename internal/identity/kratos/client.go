// Package kratos is a minimal client for the identity provider's public API: resolving the
// session behind a cookie and fetching its browser logout URL.
package kratos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 5 * time.Second

	whoAmIPath = "/sessions/whoami"
	logoutPath = "/self-service/logout/browser"
)

// Client calls the identity provider over plain HTTP. Every request carries the caller's session
// cookie unchanged.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for baseURL (e.g. http://pirate-kratos:4433). timeout <= 0 uses 5s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// WhoAmI returns the session for cookie. The response is decoded but not validated; call
// Validate or Session on it.
func (c *Client) WhoAmI(ctx context.Context, cookie string) (*WhoAmIResponse, error) {
	var out WhoAmIResponse
	if err := c.get(ctx, whoAmIPath, cookie, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LogoutURL returns the browser logout URL for the session behind cookie.
func (c *Client) LogoutURL(ctx context.Context, cookie string) (string, error) {
	var out struct {
		LogoutURL *string `json:"logout_url"`
	}
	if err := c.get(ctx, logoutPath, cookie, &out); err != nil {
		return "", err
	}
	if out.LogoutURL == nil || *out.LogoutURL == "" {
		return "", &MissingFieldError{Field: "logout_url"}
	}
	return *out.LogoutURL, nil
}

func (c *Client) get(ctx context.Context, path, cookie string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("kratos: build request: %w", err)
	}
	req.Header.Set("Cookie", cookie)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("kratos: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Endpoint: path, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("kratos: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return &http.Client{Timeout: defaultTimeout}
	}
	return c.HTTPClient
}
