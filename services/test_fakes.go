package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hotelmanager/staffkit/core"
)

// FakeIdentityProvider is a test-only fake implementing
// core.IdentityProvider. Responses and error fields are injectable;
// call counters let tests assert exactly how many network round trips
// an operation performed.
type FakeIdentityProvider struct {
	mu sync.Mutex

	passwordSession *core.Session
	refreshSession  *core.Session
	exchangeSession *core.Session

	signInErr   error
	refreshErr  error
	signOutErr  error
	exchangeErr error

	// delay is applied to every call, bounded by the caller's context;
	// used to exercise the resolve timeout.
	delay time.Duration

	signInCalls   int
	refreshCalls  int
	signOutCalls  int
	exchangeCalls int
}

var _ core.IdentityProvider = (*FakeIdentityProvider)(nil)

func NewFakeIdentityProvider() *FakeIdentityProvider {
	return &FakeIdentityProvider{}
}

func (f *FakeIdentityProvider) wait(ctx context.Context) error {
	if f.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *FakeIdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (*core.Session, error) {
	f.mu.Lock()
	f.signInCalls++
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	if f.passwordSession == nil {
		return nil, core.ErrInvalidCredentials
	}
	s := *f.passwordSession
	return &s, nil
}

func (f *FakeIdentityProvider) Refresh(ctx context.Context, refreshToken string) (*core.Session, error) {
	f.mu.Lock()
	f.refreshCalls++
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	if f.refreshSession == nil {
		return nil, core.ErrRefreshFailed
	}
	s := *f.refreshSession
	return &s, nil
}

func (f *FakeIdentityProvider) SignOut(ctx context.Context, accessToken string) error {
	f.mu.Lock()
	f.signOutCalls++
	f.mu.Unlock()

	return f.signOutErr
}

func (f *FakeIdentityProvider) AuthorizeURL(provider, redirectTo, state, codeChallenge string) (string, error) {
	return fmt.Sprintf("https://auth.example.test/authorize?provider=%s&redirect_to=%s&state=%s&code_challenge=%s",
		provider, redirectTo, state, codeChallenge), nil
}

func (f *FakeIdentityProvider) ExchangeCode(ctx context.Context, code, codeVerifier string) (*core.Session, error) {
	f.mu.Lock()
	f.exchangeCalls++
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	if f.exchangeSession == nil {
		return nil, core.ErrInvalidCredentials
	}
	s := *f.exchangeSession
	return &s, nil
}

func (f *FakeIdentityProvider) calls() (signIn, refresh, signOut, exchange int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signInCalls, f.refreshCalls, f.signOutCalls, f.exchangeCalls
}

// FakeProfileStore is a test-only fake implementing core.ProfileStore.
type FakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*core.Profile
	getErr   error
	getCalls int
}

var _ core.ProfileStore = (*FakeProfileStore)(nil)

func NewFakeProfileStore() *FakeProfileStore {
	return &FakeProfileStore{profiles: make(map[string]*core.Profile)}
}

func (f *FakeProfileStore) put(p *core.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.ID] = p
}

func (f *FakeProfileStore) GetProfile(ctx context.Context, accessToken, userID string) (*core.Profile, error) {
	f.mu.Lock()
	f.getCalls++
	f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, core.ErrProfileNotFound
	}
	out := *p
	return &out, nil
}

// FakePreferenceStorage is a test-only fake implementing
// core.PreferenceStorage with injectable errors.
type FakePreferenceStorage struct {
	mu     sync.Mutex
	values map[string][]byte
	getErr error
	setErr error
}

var _ core.PreferenceStorage = (*FakePreferenceStorage)(nil)

func NewFakePreferenceStorage() *FakePreferenceStorage {
	return &FakePreferenceStorage{values: make(map[string][]byte)}
}

func (f *FakePreferenceStorage) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.values[key]
	if !ok {
		return nil, core.ErrPreferencesNotFound
	}
	return v, nil
}

func (f *FakePreferenceStorage) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}
