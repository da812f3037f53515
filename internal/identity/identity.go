// Package identity resolves the current user from a signed bearer token.
package identity

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated user the remote plan document belongs to.
type Identity struct {
	UserID string
	Email  string
}

// Provider exposes the identity of the current session, or nil when the
// session is anonymous.
type Provider interface {
	CurrentIdentity() *Identity
}

// Anonymous is a Provider for sessions without a token. The store runs
// local-only in that case.
type Anonymous struct{}

// CurrentIdentity always returns nil.
func (Anonymous) CurrentIdentity() *Identity { return nil }

// TokenProvider derives the identity from an HS256-signed JWT, verified
// once at construction time.
type TokenProvider struct {
	identity *Identity
}

// NewTokenProvider parses and verifies the token and extracts the subject
// and email claims.
func NewTokenProvider(token, secret string) (*TokenProvider, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse auth token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("auth token has no subject claim")
	}

	email, _ := claims["email"].(string)

	return &TokenProvider{identity: &Identity{UserID: sub, Email: email}}, nil
}

// CurrentIdentity returns the identity extracted from the token.
func (p *TokenProvider) CurrentIdentity() *Identity {
	return p.identity
}
