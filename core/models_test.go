package core

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

// Requirement: subject and expiry are read from the access token without
// signature verification; the backend stays the authority on validity.
func TestTokenClaims(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(expiry),
	})

	subject, err := TokenSubject(token)
	if err != nil {
		t.Fatalf("TokenSubject() error = %v", err)
	}
	if subject != "u1" {
		t.Errorf("subject = %q, want %q", subject, "u1")
	}

	got, err := TokenExpiry(token)
	if err != nil {
		t.Fatalf("TokenExpiry() error = %v", err)
	}
	if !got.Equal(expiry) {
		t.Errorf("expiry = %v, want %v", got, expiry)
	}
}

func TestTokenClaims_Malformed(t *testing.T) {
	if _, err := TokenSubject("not-a-jwt"); err == nil {
		t.Error("TokenSubject() accepted a malformed token")
	}
	if _, err := TokenExpiry("not-a-jwt"); err == nil {
		t.Error("TokenExpiry() accepted a malformed token")
	}
}

// Requirement: a session with no known expiry is treated as live.
func TestSession_Expired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{name: "future expiry", expiresAt: time.Now().Add(time.Hour), want: false},
		{name: "past expiry", expiresAt: time.Now().Add(-time.Minute), want: true},
		{name: "unknown expiry", want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := Session{ExpiresAt: test.expiresAt}
			if got := s.Expired(); got != test.want {
				t.Errorf("Expired() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestSession_ExpiresWithin(t *testing.T) {
	s := Session{ExpiresAt: time.Now().Add(30 * time.Second)}
	if !s.ExpiresWithin(time.Minute) {
		t.Error("ExpiresWithin(1m) = false, want true")
	}
	if s.ExpiresWithin(time.Second) {
		t.Error("ExpiresWithin(1s) = true, want false")
	}
}

// Requirement: without a recorded expiry the token's own exp claim
// decides; an unreadable token is treated as live.
func TestSession_ExpiresWithin_ClaimFallback(t *testing.T) {
	token := signedToken(t, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Second)),
	})

	s := Session{AccessToken: token}
	if !s.ExpiresWithin(time.Minute) {
		t.Error("ExpiresWithin(1m) = false, want true from the exp claim")
	}
	if s.ExpiresWithin(time.Second) {
		t.Error("ExpiresWithin(1s) = true, want false")
	}

	opaque := Session{AccessToken: "not-a-jwt"}
	if opaque.ExpiresWithin(time.Hour) {
		t.Error("ExpiresWithin() = true for an unreadable token, want false")
	}
}

// Requirement: priority and status ordinals drive sorting; cancelled and
// unknown values rank below every known one.
func TestOrdinals(t *testing.T) {
	if !(TaskPriorityUrgent.Ordinal() > TaskPriorityHigh.Ordinal() &&
		TaskPriorityHigh.Ordinal() > TaskPriorityMedium.Ordinal() &&
		TaskPriorityMedium.Ordinal() > TaskPriorityLow.Ordinal()) {
		t.Error("priority ordinals are not strictly increasing with urgency")
	}
	if TaskPriority("desconocida").Ordinal() != 0 {
		t.Error("unknown priority ordinal != 0")
	}

	if !(TaskStatusCompleted.Ordinal() > TaskStatusInProgress.Ordinal() &&
		TaskStatusInProgress.Ordinal() > TaskStatusPending.Ordinal()) {
		t.Error("status ordinals are not increasing with progress")
	}
	if TaskStatusCancelled.Ordinal() != 0 {
		t.Errorf("cancelled ordinal = %d, want 0", TaskStatusCancelled.Ordinal())
	}
}
