package jwtx

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/todo/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// AccessAuth is the only access kind issued for session tokens.
const AccessAuth = "auth"

// Claims are the session-token claims. Subject carries the user id.
type Claims struct {
	jwt.RegisteredClaims

	// Access is the purpose of the token, always AccessAuth today.
	Access string `json:"access"`
}

// NewSessionClaims builds claims for a freshly issued session token. A zero
// ttl produces a token with no expiry, which stays valid until revoked.
func NewSessionClaims(subject, issuer string, ttl time.Duration, now time.Time) (Claims, error) {
	jti, err := NewJTI()
	if err != nil {
		return Claims{}, err
	}

	c := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
			ID:       jti,
		},
		Access: AccessAuth,
	}
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return c, nil
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. It keeps
// two tokens issued to the same user in the same second distinct.
func NewJTI() (string, error) {
	jti, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("jti: %w", err)
	}
	return jti, nil
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired, allowing leeway for clock
// skew. Tokens without exp never expire.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}

// ExpiresAtTime returns the expiry as a time, or nil if the token never
// expires.
func (c *Claims) ExpiresAtTime() *time.Time {
	if c.ExpiresAt == nil {
		return nil
	}
	t := c.ExpiresAt.Time
	return &t
}
