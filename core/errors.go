package core

import "errors"

// Validation errors (caught locally, before any network call)
var (
	ErrEmailRequired    = errors.New("email is required")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password is too short")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSessionExpired     = errors.New("session expired")
	ErrRefreshFailed      = errors.New("token refresh failed")
)

// Profile validation errors. Both deny access and force sign-out;
// they carry different user-facing text.
var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileInactive    = errors.New("profile is not active")
	ErrProfileUnavailable = errors.New("profile could not be validated")
)

// OAuth flow errors
var (
	ErrCallbackInvalid = errors.New("callback URL carries neither code nor tokens")
	ErrStateMismatch   = errors.New("oauth state mismatch")
	ErrNoPendingFlow   = errors.New("no oauth flow in progress")
)

// Storage errors
var (
	ErrPreferencesNotFound = errors.New("no stored preferences")
	ErrNoStoredSession     = errors.New("no stored session")
)

// Config errors (surfaced once at startup)
var (
	ErrProviderRequired = errors.New("identity provider is required")
	ErrProfilesRequired = errors.New("profile store is required")
	ErrBaseURLRequired  = errors.New("api base url is required")
)
