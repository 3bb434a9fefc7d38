package gotrue

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelmanager/staffkit/core"
)

func newTestProvider(t *testing.T, handler http.Handler) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := New(Config{
		BaseURL: server.URL,
		APIKey:  "anon-key",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return provider
}

// Requirement: the password grant hits the token endpoint with the anon
// key and yields a session carrying the user id and both tokens.
func TestProvider_SignInWithPassword(t *testing.T) {
	// Arrange
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		w.Write([]byte(`{
			"access_token": "at-1",
			"refresh_token": "rt-1",
			"expires_in": 3600,
			"user": {"id": "u1"}
		}`))
	})
	provider := newTestProvider(t, handler)

	// Act
	sess, err := provider.SignInWithPassword(context.Background(), "ana@hotel.test", "secret1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "at-1", sess.AccessToken)
	assert.Equal(t, "rt-1", sess.RefreshToken)
	assert.Equal(t, "u1", sess.UserID)
	assert.False(t, sess.Expired())
}

// Requirement: provider error codes map onto the client's sentinel
// errors in both the legacy and the current wire shapes.
func TestProvider_AuthErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "legacy invalid_grant",
			status:  http.StatusBadRequest,
			body:    `{"error": "invalid_grant", "error_description": "Invalid login credentials"}`,
			wantErr: core.ErrInvalidCredentials,
		},
		{
			name:    "current invalid_credentials",
			status:  http.StatusBadRequest,
			body:    `{"code": 400, "error_code": "invalid_credentials", "msg": "Invalid login credentials"}`,
			wantErr: core.ErrInvalidCredentials,
		},
		{
			name:    "email not confirmed",
			status:  http.StatusBadRequest,
			body:    `{"code": 400, "error_code": "email_not_confirmed", "msg": "Email not confirmed"}`,
			wantErr: core.ErrEmailNotConfirmed,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
				w.Write([]byte(test.body))
			})
			provider := newTestProvider(t, handler)

			_, err := provider.SignInWithPassword(context.Background(), "ana@hotel.test", "wrong-pass")
			assert.ErrorIs(t, err, test.wantErr)
		})
	}
}

// Requirement: the refresh grant sends the stored token.
func TestProvider_Refresh(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		w.Write([]byte(`{"access_token": "at-2", "refresh_token": "rt-2", "expires_in": 3600, "user": {"id": "u1"}}`))
	})
	provider := newTestProvider(t, handler)

	sess, err := provider.Refresh(context.Background(), "rt-1")

	require.NoError(t, err)
	assert.Equal(t, "at-2", sess.AccessToken)
	assert.Equal(t, "rt-2", sess.RefreshToken)
}

// Requirement: the authorize URL carries provider, redirect, state and
// the PKCE challenge with the s256 method.
func TestProvider_AuthorizeURL(t *testing.T) {
	provider, err := New(Config{BaseURL: "https://abc.supabase.co", APIKey: "anon-key"})
	require.NoError(t, err)

	raw, err := provider.AuthorizeURL("google", "hotelmanager://auth/callback", "state-1", "challenge-1")
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/auth/v1/authorize", parsed.Path)
	assert.Equal(t, "google", parsed.Query().Get("provider"))
	assert.Equal(t, "hotelmanager://auth/callback", parsed.Query().Get("redirect_to"))
	assert.Equal(t, "state-1", parsed.Query().Get("state"))
	assert.Equal(t, "challenge-1", parsed.Query().Get("code_challenge"))
	assert.Equal(t, "s256", parsed.Query().Get("code_challenge_method"))

	_, err = provider.AuthorizeURL("", "", "", "")
	assert.ErrorIs(t, err, core.ErrProviderRequired)
}

// Requirement: the profile read goes through PostgREST with the caller's
// bearer token; an empty result set is the not-found sentinel.
func TestProvider_GetProfile(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name: "active profile",
			body: `[{"id": "u1", "email": "ana@hotel.test", "nombre": "Ana", "rol": "supervisor", "activo": true}]`,
		},
		{
			name:    "no row",
			body:    `[]`,
			wantErr: core.ErrProfileNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/rest/v1/profiles", r.URL.Path)
				assert.Equal(t, "eq.u1", r.URL.Query().Get("id"))
				assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
				w.Write([]byte(test.body))
			})
			provider := newTestProvider(t, handler)

			profile, err := provider.GetProfile(context.Background(), "at-1", "u1")

			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ana", profile.Name)
			assert.Equal(t, core.RoleSupervisor, profile.Role)
			assert.True(t, profile.Active)
		})
	}
}

// Requirement: a PostgREST failure is the unavailable sentinel, not the
// missing-profile one.
func TestProvider_GetProfile_Unavailable(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	provider := newTestProvider(t, handler)

	_, err := provider.GetProfile(context.Background(), "at-1", "u1")
	assert.ErrorIs(t, err, core.ErrProfileUnavailable)
}
