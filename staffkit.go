// Package staffkit is the Go client for the hotel staff backend: session
// lifecycle against the identity provider, the task view engine with
// persisted preferences, and the REST API surface.
package staffkit

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hotelmanager/staffkit/api"
	"github.com/hotelmanager/staffkit/core"
	"github.com/hotelmanager/staffkit/pkg/memstore"
	"github.com/hotelmanager/staffkit/services"
)

// interfaces
type (
	IdentityProvider  = core.IdentityProvider
	ProfileStore      = core.ProfileStore
	PreferenceStorage = core.PreferenceStorage
	SessionStore      = core.SessionStore
	TokenSource       = core.TokenSource
)

// structs
type (
	Session           = core.Session
	Profile           = core.Profile
	Task              = core.Task
	FilterPreferences = core.FilterPreferences
	Callback          = core.Callback

	SessionConfig = services.SessionConfig
	SignInResult  = services.SignInResult
	OAuthFlow     = services.OAuthFlow
	FilterPatch   = services.FilterPatch
)

type (
	AuthState        = core.AuthState
	SortKey          = core.SortKey
	AssignmentFilter = core.AssignmentFilter
	Role             = core.Role
)

const (
	StateLoading         = core.StateLoading
	StateUnauthenticated = core.StateUnauthenticated
	StateAuthenticated   = core.StateAuthenticated
)

// Constructors & helpers (convenience re-exports)
var (
	DefaultPreferences   = core.DefaultPreferences
	DefaultSessionConfig = services.DefaultSessionConfig
	ParseCallbackURL     = core.ParseCallbackURL
	DeriveView           = services.DeriveView
	NewMemStore          = memstore.New
)

var (
	ErrEmailRequired      = core.ErrEmailRequired
	ErrInvalidEmail       = core.ErrInvalidEmail
	ErrPasswordRequired   = core.ErrPasswordRequired
	ErrPasswordTooShort   = core.ErrPasswordTooShort
	ErrInvalidCredentials = core.ErrInvalidCredentials
)

var (
	ErrNotAuthenticated   = core.ErrNotAuthenticated
	ErrSessionExpired     = core.ErrSessionExpired
	ErrProfileNotFound    = core.ErrProfileNotFound
	ErrProfileInactive    = core.ErrProfileInactive
	ErrProfileUnavailable = core.ErrProfileUnavailable
)

var (
	ErrProviderRequired = core.ErrProviderRequired
	ErrProfilesRequired = core.ErrProfilesRequired
	ErrBaseURLRequired  = core.ErrBaseURLRequired
)

// Config wires the client together. Provider and Profiles are required;
// storage defaults to in-memory, which means sessions and preferences do
// not survive the process. Use adapters/sqlite for persistence.
type Config struct {
	// Provider performs the auth flows (adapters/gotrue or a custom one).
	Provider IdentityProvider

	// Profiles resolves and validates application profiles.
	Profiles ProfileStore

	// APIBaseURL is the staff backend root. Empty disables the REST
	// client.
	APIBaseURL string

	// Storage persists view preferences. Nil falls back to memory.
	Storage PreferenceStorage

	// Sessions persists the refresh token. Nil falls back to memory.
	Sessions SessionStore

	// ResolveTimeout bounds session restoration on startup. Zero uses
	// the default.
	ResolveTimeout time.Duration

	// HTTPClient overrides the REST client's transport.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// App is the assembled client.
type App struct {
	Session *services.SessionService
	Tasks   *services.TaskViewService

	// API is nil when Config.APIBaseURL is empty.
	API *api.Client
}

func New(config Config) (*App, error) {
	if config.Provider == nil {
		return nil, ErrProviderRequired
	}
	if config.Profiles == nil {
		return nil, ErrProfilesRequired
	}

	// Set Defaults

	storage := config.Storage
	sessions := config.Sessions
	if storage == nil || sessions == nil {
		mem := memstore.New()
		if storage == nil {
			storage = mem
		}
		if sessions == nil {
			sessions = mem
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	session := services.NewSessionService(
		SessionConfig{ResolveTimeout: config.ResolveTimeout},
		config.Provider,
		config.Profiles,
		sessions,
		logger,
	)

	app := &App{
		Session: session,
		Tasks:   services.NewTaskViewService(storage, logger),
	}

	if config.APIBaseURL != "" {
		client, err := api.New(api.Config{
			BaseURL:    config.APIBaseURL,
			Tokens:     session,
			HTTPClient: config.HTTPClient,
			Logger:     logger,
		})
		if err != nil {
			return nil, err
		}
		app.API = client
	}

	return app, nil
}
