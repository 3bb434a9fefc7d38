package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
)

const (
	// DefaultStateLength is the byte length of OAuth state nonces.
	DefaultStateLength = 16

	// DefaultVerifierLength is the byte length of PKCE code verifiers.
	// 32 bytes encode to 43 characters, the RFC 7636 minimum.
	DefaultVerifierLength = 32
)

var ErrEmptyValue = errors.New("value cannot be empty")

// PKCE holds one code verifier and its derived S256 challenge.
// The verifier stays local; only the challenge travels in the
// authorize URL.
type PKCE struct {
	Verifier  string
	Challenge string
}

func generateToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		byteLength = DefaultStateLength
	}

	bytes := make([]byte, byteLength)

	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// GenerateState returns a random URL-safe nonce for OAuth flows.
func GenerateState() (string, error) {
	return generateToken(DefaultStateLength)
}

// GeneratePKCE returns a fresh verifier/challenge pair.
func GeneratePKCE() (*PKCE, error) {
	verifier, err := generateToken(DefaultVerifierLength)
	if err != nil {
		return nil, err
	}

	return &PKCE{
		Verifier:  verifier,
		Challenge: S256Challenge(verifier),
	}, nil
}

// S256Challenge derives the PKCE challenge from a verifier per RFC 7636.
func S256Challenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// ConstantTimeEquals compares two short secrets (states, nonces) without
// leaking position information through timing.
func ConstantTimeEquals(a, b string) (bool, error) {
	if a == "" || b == "" {
		return false, ErrEmptyValue
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1, nil
}
