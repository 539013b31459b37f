// Package apiclient is a Go client for the petcare API that reproduces the
// browser pipeline: it attaches the in-memory bearer token and a CSRF header
// to every request, retries once with a fresh CSRF token on 403, and retries
// once after a refresh on 401. An unrecoverable 401 clears the token and
// broadcasts a forced logout.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"petcare/internal/domain"
)

const csrfHeaderName = "x-csrf-token"

// APIError is the decoded server error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// AuthResponse is the body of register/login/refresh responses.
type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	User        *domain.User `json:"user"`
}

// Client is safe for concurrent use. The refresh cookie lives in the
// underlying cookie jar; the access and CSRF tokens live in memory under the
// mutex, exactly one of each shared by all in-flight requests.
type Client struct {
	base *url.URL
	http *http.Client

	mu          sync.Mutex
	accessToken string
	csrfToken   string

	logoutOnce sync.Once
	logoutCh   chan struct{}
}

// New builds a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: u,
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		logoutCh: make(chan struct{}),
	}, nil
}

// ForcedLogout is closed when a refresh fails and the session cannot be
// recovered. Callers use it to drop back to the login screen.
func (c *Client) ForcedLogout() <-chan struct{} {
	return c.logoutCh
}

// AccessToken returns the current in-memory bearer token, empty when logged
// out.
func (c *Client) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// SetAccessToken replaces the in-memory bearer token.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// Register creates an account and stores the returned access token.
func (c *Client) Register(ctx context.Context, email, password, firstName, lastName string) (*AuthResponse, error) {
	return c.authCall(ctx, "/api/auth/register", map[string]string{
		"email":     email,
		"password":  password,
		"firstName": firstName,
		"lastName":  lastName,
	})
}

// Login authenticates and stores the returned access token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.authCall(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Refresh rotates the refresh cookie and stores the new access token.
func (c *Client) Refresh(ctx context.Context) (*AuthResponse, error) {
	return c.authCall(ctx, "/api/auth/refresh", nil)
}

func (c *Client) authCall(ctx context.Context, path string, body any) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.Do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	c.SetAccessToken(out.AccessToken)
	return &out, nil
}

// Logout revokes the server session and clears the in-memory token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.Do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.SetAccessToken("")
	return err
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out struct {
		User *domain.User `json:"user"`
	}
	if err := c.Do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Do runs one request through the pipeline and decodes a 2xx JSON body into
// out when out is non-nil. Retry markers are local to this call, so
// concurrent requests each get at most one CSRF retry and one refresh retry.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode body: %w", err)
		}
	}

	csrfRetried := false
	authRetried := false
	for {
		status, respBody, err := c.send(ctx, method, path, payload)
		if err != nil {
			return err
		}

		switch {
		case status == http.StatusForbidden && !csrfRetried && mutating(method):
			csrfRetried = true
			if err := c.fetchCSRFToken(ctx); err != nil {
				return err
			}
			continue

		case status == http.StatusUnauthorized && !authRetried && !isAuthPath(path):
			authRetried = true
			if _, err := c.Refresh(ctx); err != nil {
				c.SetAccessToken("")
				c.logoutOnce.Do(func() { close(c.logoutCh) })
				return decodeError(status, respBody)
			}
			continue
		}

		if status >= 400 {
			return decodeError(status, respBody)
		}
		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("apiclient: decode response: %w", err)
			}
		}
		return nil
	}
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), reader)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token, csrf := c.accessToken, c.csrfToken
	c.mu.Unlock()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if mutating(method) {
		if csrf == "" {
			if err := c.fetchCSRFToken(ctx); err != nil {
				return 0, nil, err
			}
			c.mu.Lock()
			csrf = c.csrfToken
			c.mu.Unlock()
		}
		req.Header.Set(csrfHeaderName, csrf)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

func (c *Client) fetchCSRFToken(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.JoinPath("/api/csrf-token").String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp.StatusCode, respBody)
	}

	var out struct {
		CSRFToken string `json:"csrfToken"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return fmt.Errorf("apiclient: decode csrf token: %w", err)
	}

	c.mu.Lock()
	c.csrfToken = out.CSRFToken
	c.mu.Unlock()
	return nil
}

func mutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// isAuthPath reports whether a 401 from this path must not trigger a refresh:
// a failed login or refresh is final.
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/api/auth/login") ||
		strings.HasPrefix(path, "/api/auth/refresh") ||
		strings.HasPrefix(path, "/api/auth/register") ||
		strings.HasPrefix(path, "/api/auth/social")
}

func decodeError(status int, body []byte) error {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	apiErr := &APIError{Status: status, Code: "UNKNOWN", Message: http.StatusText(status)}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error.Code != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
