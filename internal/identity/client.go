package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/unighana/unighana-backend/internal/domain"
)

// Client talks to the managed identity provider's REST API. The provider is
// the system of record for account/password data; nothing password-shaped is
// stored locally.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.With("component", "identity_client"),
	}
}

type CreateUserParams struct {
	Email         string
	Password      string
	DisplayName   string
	EmailVerified bool
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateUser registers a new account and returns its id. The provider
// enforces email uniqueness, so a concurrent signup for the same address
// loses here rather than racing a lookup.
func (c *Client) CreateUser(ctx context.Context, params CreateUserParams) (string, error) {
	body := map[string]any{
		"email":         params.Email,
		"emailVerified": params.EmailVerified,
	}
	if params.Password != "" {
		body["password"] = params.Password
	}
	if params.DisplayName != "" {
		body["displayName"] = params.DisplayName
	}

	var resp struct {
		LocalID string `json:"localId"`
	}
	if err := c.post(ctx, "/v1/accounts:signUp", body, &resp); err != nil {
		if strings.Contains(err.Error(), "EMAIL_EXISTS") {
			return "", domain.ErrDuplicateEmail
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	return resp.LocalID, nil
}

// GetUserByEmail looks up an account by email. Returns
// domain.ErrUserNotFound when the provider has no such account.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	body := map[string]any{"email": []string{email}}

	var resp struct {
		Users []struct {
			LocalID          string `json:"localId"`
			Email            string `json:"email"`
			EmailVerified    bool   `json:"emailVerified"`
			ProviderUserInfo []struct {
				ProviderID string `json:"providerId"`
			} `json:"providerUserInfo"`
		} `json:"users"`
	}
	if err := c.post(ctx, "/v1/accounts:lookup", body, &resp); err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if len(resp.Users) == 0 {
		return nil, domain.ErrUserNotFound
	}

	u := resp.Users[0]
	id := &domain.Identity{
		ID:            u.LocalID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
	}
	for _, p := range u.ProviderUserInfo {
		id.Providers = append(id.Providers, domain.ParseProvider(p.ProviderID))
	}

	return id, nil
}

// VerifyPassword performs a password-grant round trip against the provider.
// Every failure mode (wrong password, unknown account, network error,
// provider outage) collapses to ErrInvalidCredentials so callers cannot
// leak account existence or service state to clients. The underlying cause
// is logged for operators.
func (c *Client) VerifyPassword(ctx context.Context, email, password string) error {
	body := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	if err := c.post(ctx, "/v1/accounts:signInWithPassword", body, &struct{}{}); err != nil {
		c.logger.WarnContext(ctx, "password verification failed", "error", err)
		return domain.ErrInvalidCredentials
	}
	return nil
}

// SetEmailVerified syncs the provider's own verified flag after a code is
// consumed. The profile document is the source the API reads, so this is
// best-effort from the caller's point of view.
func (c *Client) SetEmailVerified(ctx context.Context, userID string, verified bool) error {
	body := map[string]any{
		"localId":       userID,
		"emailVerified": verified,
	}

	if err := c.post(ctx, "/v1/accounts:update", body, &struct{}{}); err != nil {
		return fmt.Errorf("update emailVerified: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + path + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("identity provider: %s (status %d)", apiErr.Error.Message, resp.StatusCode)
		}
		return fmt.Errorf("identity provider: status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
