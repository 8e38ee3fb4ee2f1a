package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default timeout of a single API call.
	DefaultTimeout = 10 * time.Second

	usersPath = "/users/v1/"
)

// User represents a user returned by the API.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UserUpdate holds the fields of a partial update. Nil fields are left out of the request.
type UserUpdate struct {
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

// APIError is returned when the API answers with a non-success status code.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("users api: %d %s", e.StatusCode, e.Detail)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client represents a users API client.
type Client struct {
	serverAddress string
	httpClient    *http.Client
}

// ClientOption is a function signature for providing options to configure the Client.
type ClientOption func(*Client)

// WithHTTPClient is an option to replace the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new users API client for the server at serverAddress, e.g. http://localhost:8000.
func NewClient(serverAddress string, opts ...ClientOption) *Client {
	client := &Client{
		serverAddress: strings.TrimRight(serverAddress, "/"),
		httpClient:    &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// ListUsers returns every user.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	if _, err := c.do(ctx, http.MethodGet, usersPath, nil, http.StatusOK, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns the user with the given username.
func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	user := &User{}
	if _, err := c.do(ctx, http.MethodGet, usersPath+url.PathEscape(username), nil, http.StatusOK, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser creates a user and returns it together with the Location header sent by the server.
func (c *Client) CreateUser(ctx context.Context, username, email, role string) (*User, string, error) {
	payload := map[string]string{
		"username": username,
		"email":    email,
		"role":     role,
	}

	user := &User{}
	header, err := c.do(ctx, http.MethodPost, usersPath, payload, http.StatusCreated, user)
	if err != nil {
		return nil, "", err
	}
	return user, header.Get("Location"), nil
}

// UpdateUser applies a partial update to the user with the given username.
func (c *Client) UpdateUser(ctx context.Context, username string, update UserUpdate) error {
	_, err := c.do(ctx, http.MethodPut, usersPath+url.PathEscape(username), update, http.StatusNoContent, nil)
	return err
}

// DeleteUser deletes the user with the given username. Deleting an unknown user succeeds.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	_, err := c.do(ctx, http.MethodDelete, usersPath+url.PathEscape(username), nil, http.StatusNoContent, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload any, expectedStatus int, out any) (http.Header, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverAddress+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != expectedStatus {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Detail = errBody.Detail
		}
		return nil, apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return resp.Header, nil
}
