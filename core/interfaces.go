package core

import "context"

// Ports define interfaces for external dependencies

// ============================================
// IDENTITY PORT (external auth provider)
// ============================================

// IdentityProvider wraps the external identity service. Implementations
// must return typed errors (ErrInvalidCredentials, ErrEmailNotConfirmed,
// ErrRefreshFailed) so the session manager can map them to user-facing
// messages.
type IdentityProvider interface {
	// SignInWithPassword performs the email/password grant.
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)

	// Refresh exchanges a refresh token for a fresh session.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)

	// SignOut revokes the session server-side. Best effort: the caller
	// clears local state regardless of the result.
	SignOut(ctx context.Context, accessToken string) error

	// AuthorizeURL builds the provider redirect URL for an OAuth flow.
	AuthorizeURL(provider, redirectTo, state, codeChallenge string) (string, error)

	// ExchangeCode trades an authorization code (plus the PKCE verifier
	// generated at flow start) for a session.
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*Session, error)
}

// ProfileStore reads application profiles keyed by the provider user id.
type ProfileStore interface {
	// GetProfile returns ErrProfileNotFound when no row exists for the id.
	GetProfile(ctx context.Context, accessToken, userID string) (*Profile, error)
}

// ============================================
// STORAGE PORTS (local persistence)
// ============================================

// PreferenceStorage is the persisted local key-value store for view
// preferences. Reads and writes are best effort; callers must treat
// in-memory state as authoritative.
type PreferenceStorage interface {
	// Get returns ErrPreferencesNotFound when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// SessionStore persists the refresh token so a session can be restored
// on the next start.
type SessionStore interface {
	SaveRefreshToken(ctx context.Context, token string) error
	// LoadRefreshToken returns ErrNoStoredSession when nothing is stored.
	LoadRefreshToken(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// ============================================
// TOKEN PORT (consumed by the HTTP layer)
// ============================================

// TokenSource hands access tokens to outbound API calls and performs the
// one-shot refresh when a call comes back 401.
type TokenSource interface {
	// AccessToken is a pure accessor: current token, or "" when
	// unauthenticated. No side effects.
	AccessToken() string

	// RefreshAccessToken yields a new access token for the retried
	// request. Irrecoverable failure signs the user out and returns
	// ErrSessionExpired.
	RefreshAccessToken(ctx context.Context) (string, error)
}
