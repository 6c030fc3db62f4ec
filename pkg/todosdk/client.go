package todosdk

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/todo/pkg/httpx"
)

// SDKClient is a client for the todo service. It performs unauthenticated
// calls and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account and returns a session for it.
func (c *SDKClient) Register(ctx context.Context, email, password string) (*Session, error) {
	return c.credentials(ctx, "/users", email, password)
}

// Login starts a new session. Every login gets its own token.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.credentials(ctx, "/users/login", email, password)
}

// NewSession wraps a token obtained elsewhere.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

func (c *SDKClient) credentials(ctx context.Context, path, email, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, "", Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	token := resp.Header.Get(httpx.AuthHeader)

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, errors.New("todosdk: response is missing the x-auth header")
	}

	return &Session{client: c, token: token, user: &user}, nil
}

// Livez calls the liveness probe.
func (c *SDKClient) Livez(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// Readyz calls the readiness probe.
func (c *SDKClient) Readyz(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
