package staffkit

import (
	"context"
	"errors"
	"testing"
)

type mockProvider struct{}

func (mockProvider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	return nil, ErrInvalidCredentials
}

func (mockProvider) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	return nil, ErrSessionExpired
}

func (mockProvider) SignOut(ctx context.Context, accessToken string) error { return nil }

func (mockProvider) AuthorizeURL(provider, redirectTo, state, codeChallenge string) (string, error) {
	return "https://auth.example.test/authorize", nil
}

func (mockProvider) ExchangeCode(ctx context.Context, code, codeVerifier string) (*Session, error) {
	return nil, ErrInvalidCredentials
}

type mockProfiles struct{}

func (mockProfiles) GetProfile(ctx context.Context, accessToken, userID string) (*Profile, error) {
	return nil, ErrProfileNotFound
}

// Requirement: provider and profile store are required; the REST client
// is optional and only built when a base URL is given.
func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
		wantAPI bool
	}{
		{
			name:    "missing provider",
			config:  Config{Profiles: mockProfiles{}},
			wantErr: ErrProviderRequired,
		},
		{
			name:    "missing profile store",
			config:  Config{Provider: mockProvider{}},
			wantErr: ErrProfilesRequired,
		},
		{
			name:   "minimal config without API",
			config: Config{Provider: mockProvider{}, Profiles: mockProfiles{}},
		},
		{
			name: "full config with API",
			config: Config{
				Provider:   mockProvider{},
				Profiles:   mockProfiles{},
				APIBaseURL: "https://api.hotel.example/api",
			},
			wantAPI: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			app, err := New(test.config)

			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if app.Session == nil || app.Tasks == nil {
				t.Fatal("New() returned incomplete app")
			}
			if (app.API != nil) != test.wantAPI {
				t.Errorf("API presence = %v, want %v", app.API != nil, test.wantAPI)
			}
		})
	}
}

// Requirement: the default storage is in-memory and functional: the app
// starts unauthenticated and preference updates stick for the session.
func TestNew_MemoryDefaults(t *testing.T) {
	app, err := New(Config{Provider: mockProvider{}, Profiles: mockProfiles{}})
	if err != nil {
		t.Fatal(err)
	}

	app.Session.Init(context.Background())
	if got := app.Session.State(); got != StateUnauthenticated {
		t.Errorf("State() = %v, want %v", got, StateUnauthenticated)
	}

	prefs := app.Tasks.UpdateSort(context.Background(), SortKey("fecha_asc"))
	if prefs.SortBy != SortKey("fecha_asc") {
		t.Errorf("SortBy = %q, want %q", prefs.SortBy, "fecha_asc")
	}
}
