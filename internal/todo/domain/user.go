package domain

import "time"

type User struct {
	ID           string
	Email        string // trimmed, lower-cased, unique
	PasswordHash string // argon2id PHC, or bcrypt for imported accounts
	Tokens       []Token
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasToken reports whether the user holds a live token with the given access
// kind and fingerprint at now.
func (u User) HasToken(access, fingerprint string, now time.Time) bool {
	for _, t := range u.Tokens {
		if t.Access == access && t.Fingerprint == fingerprint && !t.Expired(now) {
			return true
		}
	}
	return false
}
