package core

import (
	"errors"
	"testing"
)

// Requirement: web callbacks carry the code in the query; native deep
// links carry the token pair in the fragment, which wins on conflict.
func TestParseCallbackURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Callback
	}{
		{
			name: "web code in query",
			raw:  "https://app.hotel.test/auth/callback?code=abc123&state=s1",
			want: Callback{Code: "abc123", State: "s1"},
		},
		{
			name: "native token pair in fragment",
			raw:  "hotelmanager://auth/callback#access_token=at1&refresh_token=rt1",
			want: Callback{AccessToken: "at1", RefreshToken: "rt1"},
		},
		{
			name: "fragment wins over query",
			raw:  "https://app.hotel.test/auth/callback?state=query#access_token=at1&refresh_token=rt1&state=frag",
			want: Callback{AccessToken: "at1", RefreshToken: "rt1", State: "frag"},
		},
		{
			name: "provider error",
			raw:  "hotelmanager://auth/callback#error=access_denied&error_description=denied",
			want: Callback{ErrorCode: "access_denied", ErrorDesc: "denied"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cb, err := ParseCallbackURL(test.raw)
			if err != nil {
				t.Fatalf("ParseCallbackURL() error = %v", err)
			}
			if *cb != test.want {
				t.Errorf("callback = %+v, want %+v", *cb, test.want)
			}
		})
	}
}

// Requirement: a callback with neither code, token pair nor error is
// rejected; an access token alone is not a pair.
func TestParseCallbackURL_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "bare callback", raw: "hotelmanager://auth/callback"},
		{name: "access token without refresh token", raw: "hotelmanager://auth/callback#access_token=at1"},
		{name: "state only", raw: "https://app.hotel.test/auth/callback?state=s1"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseCallbackURL(test.raw); !errors.Is(err, ErrCallbackInvalid) {
				t.Fatalf("ParseCallbackURL() error = %v, want %v", err, ErrCallbackInvalid)
			}
		})
	}
}
