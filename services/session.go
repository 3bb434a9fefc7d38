package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/hotelmanager/staffkit/core"
	"github.com/hotelmanager/staffkit/pkg/crypto"
)

const (
	// DefaultResolveTimeout bounds session restoration on startup so a
	// stalled provider cannot leave the app in StateLoading forever.
	DefaultResolveTimeout = 4 * time.Second

	minPasswordLength = 6
)

// User-facing messages, kept in the application's language.
const (
	msgProfileMissing     = "Tu usuario no está habilitado. Contacta al administrador."
	msgProfileInactive    = "Tu usuario aún no fue habilitado. Contacta al administrador."
	msgProfileUnavailable = "No se pudo validar tu usuario. Intenta más tarde."
)

type SessionConfig struct {
	ResolveTimeout time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{ResolveTimeout: DefaultResolveTimeout}
}

// SessionService owns authentication state: current session, profile,
// loading flag and error overlay. It synchronizes that state with the
// external identity provider and exposes sign-in/sign-out operations plus
// the token source consumed by the HTTP layer.
//
// Construct exactly one per process and thread the handle through;
// there is no package-level singleton.
type SessionService struct {
	config   SessionConfig
	provider core.IdentityProvider
	profiles core.ProfileStore
	store    core.SessionStore
	logger   *slog.Logger

	mu        sync.RWMutex
	state     core.AuthState
	session   *core.Session
	profile   *core.Profile
	authErr   string
	pending   *pendingOAuth
	listeners map[int]func(core.AuthState)
	nextID    int
}

// Ensure SessionService can feed the API client
var _ core.TokenSource = (*SessionService)(nil)

type pendingOAuth struct {
	state    string
	verifier string
}

type SignInResult struct {
	Session *core.Session `json:"session"`
	Profile *core.Profile `json:"profile"`
}

// OAuthFlow is a started OAuth sign-in: the caller redirects (web) or
// opens an external browser (native) to URL, then feeds the callback URL
// to CompleteOAuth.
type OAuthFlow struct {
	URL   string
	State string
}

func NewSessionService(config SessionConfig, provider core.IdentityProvider, profiles core.ProfileStore, store core.SessionStore, logger *slog.Logger) *SessionService {
	if config.ResolveTimeout <= 0 {
		config.ResolveTimeout = DefaultResolveTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionService{
		config:    config,
		provider:  provider,
		profiles:  profiles,
		store:     store,
		logger:    logger,
		state:     core.StateLoading,
		listeners: make(map[int]func(core.AuthState)),
	}
}

// Init restores a persisted session on startup. The whole resolution is
// bounded by ResolveTimeout; any failure or timeout degrades to
// StateUnauthenticated rather than surfacing an error to the caller.
func (s *SessionService) Init(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.config.ResolveTimeout)
	defer cancel()

	token, err := s.store.LoadRefreshToken(ctx)
	if err != nil {
		if !errors.Is(err, core.ErrNoStoredSession) {
			s.logger.Warn("session restore: reading stored token", "error", err)
		}
		s.setState(core.StateUnauthenticated, nil, nil, "")
		return
	}

	sess, err := s.provider.Refresh(ctx, token)
	if err != nil {
		s.logger.Warn("session restore failed", "error", err)
		if err := s.store.Clear(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("clearing stored session", "error", err)
		}
		s.setState(core.StateUnauthenticated, nil, nil, "")
		return
	}

	if err := s.adoptSession(ctx, sess); err != nil {
		s.logger.Warn("restored session rejected", "error", err)
	}
}

// SignInWithEmail validates inputs locally, then performs the password
// grant and profile validation. A provider-level success with an inactive
// or missing profile is reported as failure.
func (s *SessionService) SignInWithEmail(ctx context.Context, email, password string) (*SignInResult, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	s.clearAuthError()

	sess, err := s.provider.SignInWithPassword(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}

	if err := s.adoptSession(ctx, sess); err != nil {
		return nil, err
	}

	return s.result(), nil
}

// BeginOAuth starts an OAuth sign-in against the named provider
// ("google", ...). redirectTo is the page origin callback on web or the
// app's custom URI scheme on native.
func (s *SessionService) BeginOAuth(provider, redirectTo string) (*OAuthFlow, error) {
	state, err := crypto.GenerateState()
	if err != nil {
		return nil, err
	}

	pkce, err := crypto.GeneratePKCE()
	if err != nil {
		return nil, err
	}

	authorizeURL, err := s.provider.AuthorizeURL(provider, redirectTo, state, pkce.Challenge)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.pending = &pendingOAuth{state: state, verifier: pkce.Verifier}
	s.authErr = ""
	s.mu.Unlock()

	return &OAuthFlow{URL: authorizeURL, State: state}, nil
}

// CompleteOAuth resumes a flow from the callback URL. A direct token pair
// (native fragment) is adopted as-is; an authorization code is exchanged
// using the verifier generated in BeginOAuth. Both paths converge on the
// same profile validation as email sign-in.
func (s *SessionService) CompleteOAuth(ctx context.Context, rawCallbackURL string) (*SignInResult, error) {
	cb, err := core.ParseCallbackURL(rawCallbackURL)
	if err != nil {
		return nil, err
	}
	if cb.ErrorCode != "" {
		return nil, fmt.Errorf("oauth callback error %s: %s", cb.ErrorCode, cb.ErrorDesc)
	}

	var sess *core.Session
	if cb.HasTokenPair() {
		sess = s.sessionFromTokens(cb.AccessToken, cb.RefreshToken)
	} else {
		s.mu.Lock()
		pending := s.pending
		s.pending = nil
		s.mu.Unlock()

		if pending == nil {
			return nil, core.ErrNoPendingFlow
		}
		if cb.State != "" {
			ok, err := crypto.ConstantTimeEquals(cb.State, pending.state)
			if err != nil || !ok {
				return nil, core.ErrStateMismatch
			}
		}

		sess, err = s.provider.ExchangeCode(ctx, cb.Code, pending.verifier)
		if err != nil {
			return nil, err
		}
	}

	if err := s.adoptSession(ctx, sess); err != nil {
		return nil, err
	}

	return s.result(), nil
}

// SignOut revokes the external session best-effort and unconditionally
// clears local session, profile and error state.
func (s *SessionService) SignOut(ctx context.Context) {
	s.mu.RLock()
	sess := s.session
	s.mu.RUnlock()

	if sess != nil {
		if err := s.provider.SignOut(ctx, sess.AccessToken); err != nil {
			s.logger.Warn("provider sign-out failed", "error", err)
		}
	}
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("clearing stored session", "error", err)
	}

	s.setState(core.StateUnauthenticated, nil, nil, "")
}

// RefreshAccessToken implements core.TokenSource. Irrecoverable refresh
// failure triggers a full sign-out.
func (s *SessionService) RefreshAccessToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	sess := s.session
	s.mu.RUnlock()

	if sess == nil {
		return "", core.ErrNotAuthenticated
	}

	refreshed, err := s.provider.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		s.logger.Warn("token refresh failed, signing out", "error", err)
		s.SignOut(context.WithoutCancel(ctx))
		return "", fmt.Errorf("%w: %v", core.ErrSessionExpired, err)
	}

	s.mu.Lock()
	s.session = refreshed
	token := refreshed.AccessToken
	s.mu.Unlock()

	if err := s.store.SaveRefreshToken(ctx, refreshed.RefreshToken); err != nil {
		s.logger.Warn("persisting refresh token", "error", err)
	}

	return token, nil
}

// AccessToken implements core.TokenSource. Pure accessor, no side effects.
func (s *SessionService) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return ""
	}
	return s.session.AccessToken
}

func (s *SessionService) State() core.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *SessionService) Authenticated() bool {
	return s.State() == core.StateAuthenticated
}

// Profile returns the validated profile, or nil when unauthenticated.
func (s *SessionService) Profile() *core.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// AuthError returns the error overlay shown alongside
// StateUnauthenticated, or "".
func (s *SessionService) AuthError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authErr
}

// OnChange registers a state-change handler and returns its unsubscribe
// function. Callers must unsubscribe on teardown.
func (s *SessionService) OnChange(fn func(core.AuthState)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// ValidateCredentials applies the local sign-in checks: non-empty fields,
// a syntactically valid email, password of at least six characters.
func ValidateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return core.ErrEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return core.ErrInvalidEmail
	}
	if password == "" {
		return core.ErrPasswordRequired
	}
	if len(password) < minPasswordLength {
		return core.ErrPasswordTooShort
	}
	return nil
}

// adoptSession validates the profile behind a provider session and either
// commits the authenticated state or revokes the session and records the
// denial reason. Shared by every sign-in path and by restore.
func (s *SessionService) adoptSession(ctx context.Context, sess *core.Session) error {
	profile, err := s.profiles.GetProfile(ctx, sess.AccessToken, sess.UserID)
	if err != nil {
		s.logger.Warn("profile validation failed", "user_id", sess.UserID, "error", err)
		s.revoke(ctx, sess)
		if errors.Is(err, core.ErrProfileNotFound) {
			s.setState(core.StateUnauthenticated, nil, nil, msgProfileMissing)
			return err
		}
		s.setState(core.StateUnauthenticated, nil, nil, msgProfileUnavailable)
		return fmt.Errorf("%w: %v", core.ErrProfileUnavailable, err)
	}

	if !profile.Active {
		s.logger.Warn("inactive profile denied", "user_id", profile.ID)
		s.revoke(ctx, sess)
		s.setState(core.StateUnauthenticated, nil, nil, msgProfileInactive)
		return core.ErrProfileInactive
	}

	if err := s.store.SaveRefreshToken(ctx, sess.RefreshToken); err != nil {
		s.logger.Warn("persisting refresh token", "error", err)
	}

	s.setState(core.StateAuthenticated, sess, profile, "")
	return nil
}

// sessionFromTokens builds a session from a callback token pair. Claims
// are read unverified; the backend remains the authority on validity.
func (s *SessionService) sessionFromTokens(accessToken, refreshToken string) *core.Session {
	userID, err := core.TokenSubject(accessToken)
	if err != nil {
		s.logger.Warn("callback token: reading subject", "error", err)
	}
	expiry, err := core.TokenExpiry(accessToken)
	if err != nil {
		s.logger.Warn("callback token: reading expiry", "error", err)
	}

	return &core.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       userID,
		ExpiresAt:    expiry,
	}
}

// revoke signs the provider session out and drops the persisted token.
// Both are best effort.
func (s *SessionService) revoke(ctx context.Context, sess *core.Session) {
	if err := s.provider.SignOut(ctx, sess.AccessToken); err != nil {
		s.logger.Warn("provider sign-out failed", "error", err)
	}
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("clearing stored session", "error", err)
	}
}

func (s *SessionService) clearAuthError() {
	s.mu.Lock()
	s.authErr = ""
	s.mu.Unlock()
}

func (s *SessionService) result() *SignInResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &SignInResult{Session: s.session, Profile: s.profile}
}

// setState commits a transition and notifies listeners outside the lock.
func (s *SessionService) setState(state core.AuthState, sess *core.Session, profile *core.Profile, authErr string) {
	s.mu.Lock()
	s.state = state
	s.session = sess
	s.profile = profile
	s.authErr = authErr
	notify := make([]func(core.AuthState), 0, len(s.listeners))
	for _, fn := range s.listeners {
		notify = append(notify, fn)
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(state)
	}
}
