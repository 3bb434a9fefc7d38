package core

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthState is the session manager's lifecycle state.
//
// Error is not a state: it is a message overlaid on StateUnauthenticated,
// cleared on every new sign-in attempt and on successful sign-out.
type AuthState int

const (
	StateLoading AuthState = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session represents one authenticated period against the identity provider.
//
// At most one session is active per SessionService. A session on its own is
// not an authenticated state: the associated profile must exist and be active.
type Session struct {
	AccessToken  string    `json:"-"` // Never expose in JSON
	RefreshToken string    `json:"-"` // Never expose in JSON
	UserID       string    `json:"userId"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Expired reports whether the access token is past its expiry.
// A session with no known expiry is treated as live; the 401 path
// catches it server-side.
func (s *Session) Expired() bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.ExpiresAt)
}

// ExpiresWithin reports whether the access token expires inside d.
// When the session carries no expiry (a token pair adopted from a
// callback), the token's own exp claim is consulted; a token without a
// readable claim is treated as live.
func (s *Session) ExpiresWithin(d time.Duration) bool {
	expiry := s.ExpiresAt
	if expiry.IsZero() {
		claimed, err := TokenExpiry(s.AccessToken)
		if err != nil || claimed.IsZero() {
			return false
		}
		expiry = claimed
	}
	return time.Now().Add(d).After(expiry)
}

// Profile is the authenticated person's application-level identity,
// fetched from the profile store keyed by the provider user id.
//
// JSON field names follow the backend's wire format.
type Profile struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"nombre"`
	Role   Role   `json:"rol"`
	Active bool   `json:"activo"`
}

// TokenExpiry extracts the expiry claim from a JWT access token without
// verifying its signature. The client never holds the signing key; expiry
// is only used to schedule refreshes, the backend remains the authority.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// TokenSubject extracts the subject (provider user id) from a JWT access
// token without verifying its signature.
func TokenSubject(token string) (string, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "", err
	}
	return claims.Subject, nil
}
