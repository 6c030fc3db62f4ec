package domain

import "time"

// Token is a stored session token. Only the SHA-256 fingerprint of the raw
// JWT is persisted.
type Token struct {
	Access      string
	Fingerprint string
	CreatedAt   time.Time
	ExpiresAt   *time.Time // nil means no expiry
}

// Expired reports whether the token has passed its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}
