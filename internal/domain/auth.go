package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnauthorized       = errors.New("unauthorized")

	// Federation merge outcomes. The OAuth callback redirects the browser to
	// a frontend page keyed by these reasons, so they carry a stable tag.
	ErrEmailPasswordExists = errors.New("email_password_exists")
	ErrFederatedAuthFailed = errors.New("google_auth_failed")
)

// Provider is the closed set of sign-in methods an identity can be linked to.
// Anything the identity provider reports outside this set maps to
// ProviderUnknown, which the federation merge rejects explicitly.
type Provider string

const (
	ProviderPassword Provider = "password"
	ProviderGoogle   Provider = "google.com"
	ProviderUnknown  Provider = "unknown"
)

// ParseProvider maps a raw provider tag from the identity store to the
// closed Provider set.
func ParseProvider(raw string) Provider {
	switch raw {
	case string(ProviderPassword):
		return ProviderPassword
	case string(ProviderGoogle):
		return ProviderGoogle
	default:
		return ProviderUnknown
	}
}

// Identity is the account record held by the managed identity provider.
// It owns the email/password mapping and the set of linked providers;
// everything mutable about the user lives in Profile instead.
type Identity struct {
	ID            string
	Email         string
	EmailVerified bool
	Providers     []Provider
}

// HasProvider reports whether the identity is linked to p.
func (i *Identity) HasProvider(p Provider) bool {
	for _, q := range i.Providers {
		if q == p {
			return true
		}
	}
	return false
}

// FederatedProfile is the tuple delivered by a completed OAuth handshake.
type FederatedProfile struct {
	Email         string
	FirstName     string
	LastName      string
	EmailVerified bool
}

// Session is an audit record of a password login. It is written on login and
// flipped inactive on logout, but never consulted to authorize requests;
// authorization rests entirely on the self-issued session token.
type Session struct {
	ID           string
	UserID       string
	UserAgent    string
	IPAddress    string
	IsActive     bool
	CreatedAt    time.Time
	LastActiveAt time.Time
	LoggedOutAt  *time.Time
}
