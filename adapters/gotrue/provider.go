// Package gotrue adapts a Supabase project (GoTrue auth plus the
// PostgREST data API) to the identity provider and profile store ports.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hotelmanager/staffkit/core"
)

const defaultTimeout = 10 * time.Second

// profileSelect keeps the PostgREST query down to the columns the
// client actually validates.
const profileSelect = "id,email,nombre,rol,activo"

type Config struct {
	// BaseURL is the project root, e.g. "https://abc.supabase.co".
	BaseURL string

	// APIKey is the project's anon key, sent on every request.
	APIKey string

	HTTPClient *http.Client
	Logger     *slog.Logger
}

type Provider struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

var (
	_ core.IdentityProvider = (*Provider)(nil)
	_ core.ProfileStore     = (*Provider)(nil)
)

func New(config Config) (*Provider, error) {
	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, core.ErrBaseURLRequired
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Provider{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		http:    httpClient,
		logger:  logger,
	}, nil
}

// tokenResponse is the GoTrue token grant payload.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID string `json:"id"`
	} `json:"user"`
}

// authError covers both the legacy and the current GoTrue error shapes.
type authError struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
	ErrorCode   string `json:"error_code"`
	Msg         string `json:"msg"`
}

func (e authError) code() string {
	if e.ErrorCode != "" {
		return e.ErrorCode
	}
	return e.Error
}

func (e authError) message() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Description
}

func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (*core.Session, error) {
	body := map[string]string{"email": email, "password": password}
	return p.tokenGrant(ctx, "password", body)
}

func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*core.Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	return p.tokenGrant(ctx, "refresh_token", body)
}

func (p *Provider) ExchangeCode(ctx context.Context, code, codeVerifier string) (*core.Session, error) {
	body := map[string]string{"auth_code": code, "code_verifier": codeVerifier}
	return p.tokenGrant(ctx, "pkce", body)
}

func (p *Provider) tokenGrant(ctx context.Context, grantType string, body map[string]string) (*core.Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding token request: %w", err)
	}

	endpoint := p.baseURL + "/auth/v1/token?grant_type=" + grantType
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token grant %s: %w", grantType, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var authErr authError
		_ = json.Unmarshal(raw, &authErr)
		return nil, p.mapAuthError(resp.StatusCode, authErr)
	}

	var token tokenResponse
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}

	return &core.Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		UserID:       token.User.ID,
		ExpiresAt:    time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
	}, nil
}

func (p *Provider) mapAuthError(status int, authErr authError) error {
	switch authErr.code() {
	case "invalid_grant", "invalid_credentials":
		return core.ErrInvalidCredentials
	case "email_not_confirmed":
		return core.ErrEmailNotConfirmed
	}
	if msg := authErr.message(); msg != "" {
		return fmt.Errorf("auth: %d: %s", status, msg)
	}
	return fmt.Errorf("auth: unexpected status %d", status)
}

func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	endpoint := p.baseURL + "/auth/v1/logout"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building logout request: %w", err)
	}
	req.Header.Set("apikey", p.apiKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("logout: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// AuthorizeURL builds the hosted OAuth entry point. The caller opens it
// in a browser; GoTrue redirects back to redirectTo on completion.
func (p *Provider) AuthorizeURL(provider, redirectTo, state, codeChallenge string) (string, error) {
	if provider == "" {
		return "", core.ErrProviderRequired
	}

	q := url.Values{}
	q.Set("provider", provider)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	if state != "" {
		q.Set("state", state)
	}
	if codeChallenge != "" {
		q.Set("code_challenge", codeChallenge)
		q.Set("code_challenge_method", "s256")
	}

	return p.baseURL + "/auth/v1/authorize?" + q.Encode(), nil
}

// GetProfile reads the caller's row from the profiles table through
// PostgREST. Row-level security applies, so the access token must belong
// to the requested user.
func (p *Provider) GetProfile(ctx context.Context, accessToken, userID string) (*core.Profile, error) {
	q := url.Values{}
	q.Set("id", "eq."+userID)
	q.Set("select", profileSelect)
	q.Set("limit", "1")

	endpoint := p.baseURL + "/rest/v1/profiles?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building profile request: %w", err)
	}
	req.Header.Set("apikey", p.apiKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrProfileUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", core.ErrProfileUnavailable, resp.StatusCode)
	}

	var rows []core.Profile
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrProfileUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, core.ErrProfileNotFound
	}

	profile := rows[0]
	return &profile, nil
}
