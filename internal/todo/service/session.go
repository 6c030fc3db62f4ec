package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/pkg/cryptox"
	"github.com/aussiebroadwan/todo/pkg/idx"
	"github.com/aussiebroadwan/todo/pkg/jwtx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// TokenState is the outcome of inspecting a raw session token.
type TokenState int

const (
	// TokenInvalid covers bad signatures, foreign issuers, wrong access kind
	// and expired tokens.
	TokenInvalid TokenState = iota
	// TokenRevoked is a well-signed token that is no longer on the user's
	// token list, including tokens of deleted users.
	TokenRevoked
	TokenActive
)

func (s TokenState) String() string {
	switch s {
	case TokenActive:
		return "active"
	case TokenRevoked:
		return "revoked"
	default:
		return "invalid"
	}
}

// Session is the result of a successful register or login.
type Session struct {
	User  domain.User
	Token string
}

type SessionService struct {
	KeyManager *jwtx.KeyManager
	Store      store.Store
	Issuer     string

	// TokenTTL bounds session lifetime. Zero issues tokens that live until
	// logout.
	TokenTTL time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

// dummyHash is verified when the email is unknown so both failure paths
// cost one password hash.
var (
	dummyOnce sync.Once
	dummyHash string
)

func getDummyHash() string {
	dummyOnce.Do(func() {
		h, err := cryptox.HashPassword("not-a-real-password")
		if err == nil {
			dummyHash = h
		}
	})
	return dummyHash
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Register creates a user with one fresh session token.
func (s *SessionService) Register(ctx context.Context, email, password string) (Session, error) {
	email, err := normaliseEmail(email)
	if err != nil {
		return Session{}, err
	}
	if len(password) < MinPasswordLength {
		return Session{}, invalid("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	raw, token, err := s.issue(user.ID, now)
	if err != nil {
		return Session{}, err
	}
	user.Tokens = []domain.Token{token}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return Session{}, ErrEmailTaken
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", user.ID))
	return Session{User: user, Token: raw}, nil
}

// Login checks credentials and appends a new session token. Unknown email
// and wrong password are both ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, email, password string) (Session, error) {
	l := slogx.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return Session{}, fmt.Errorf("get user: %w", err)
		}
		_ = cryptox.VerifyPassword(password, getDummyHash())
		return Session{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", slog.String("user_id", user.ID), slog.Any("error", err))
		}
		return Session{}, ErrInvalidCredentials
	}

	now := s.now()
	if cryptox.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, &user, password, now)
	}

	raw, token, err := s.issue(user.ID, now)
	if err != nil {
		return Session{}, err
	}

	if err := s.Store.Users().AddToken(ctx, user.ID, token); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("add token: %w", err)
	}
	user.Tokens = append(user.Tokens, token)
	user.UpdatedAt = now

	l.Info("user logged in", slog.String("user_id", user.ID))
	return Session{User: user, Token: raw}, nil
}

// Inspect classifies a raw token. Errors are only returned for store
// failures; a nil error with TokenInvalid or TokenRevoked is a normal
// rejection.
func (s *SessionService) Inspect(ctx context.Context, raw string) (TokenState, domain.User, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TokenInvalid, domain.User{}, nil
	}

	claims, err := s.KeyManager.Verifier.Verify(raw)
	if err != nil {
		slogx.FromContext(ctx).Debug("token rejected", slog.Any("error", err))
		return TokenInvalid, domain.User{}, nil
	}
	if claims.Access != jwtx.AccessAuth || claims.Subject == "" {
		return TokenInvalid, domain.User{}, nil
	}

	fingerprint := cryptox.FingerprintToken(raw)
	user, err := s.Store.Users().GetUserByToken(ctx, claims.Subject, jwtx.AccessAuth, fingerprint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return TokenRevoked, domain.User{}, nil
		}
		return TokenInvalid, domain.User{}, fmt.Errorf("get user by token: %w", err)
	}

	// The stored row expires on its own clock, without the verifier's leeway.
	if !user.HasToken(jwtx.AccessAuth, fingerprint, s.now()) {
		return TokenInvalid, domain.User{}, nil
	}

	return TokenActive, user, nil
}

// Authenticate returns the user owning raw, or ErrUnauthenticated.
func (s *SessionService) Authenticate(ctx context.Context, raw string) (domain.User, error) {
	state, user, err := s.Inspect(ctx, raw)
	if err != nil {
		return domain.User{}, err
	}
	if state != TokenActive {
		return domain.User{}, ErrUnauthenticated
	}
	return user, nil
}

// AuthenticateToken adapts Authenticate for httpx.AuthnMiddleware.
func (s *SessionService) AuthenticateToken(ctx context.Context, raw string) (string, error) {
	user, err := s.Authenticate(ctx, raw)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// Logout removes exactly the presented token. Logging out twice is fine.
func (s *SessionService) Logout(ctx context.Context, userID, raw string) error {
	if err := s.Store.Users().RemoveToken(ctx, userID, cryptox.FingerprintToken(raw)); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	slogx.FromContext(ctx).Info("user logged out", slog.String("user_id", userID))
	return nil
}

// rehash replaces a legacy or outdated password hash after a successful
// login. Failures are logged and do not fail the login.
func (s *SessionService) rehash(ctx context.Context, user *domain.User, password string, now time.Time) {
	l := slogx.FromContext(ctx).With(slog.String("user_id", user.ID))

	hash, err := cryptox.HashPassword(password)
	if err == nil {
		err = s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash, now)
	}
	if err != nil {
		l.Warn("password rehash failed", slog.Any("error", err))
		return
	}

	user.PasswordHash = hash
	l.Info("password hash upgraded")
}

// issue signs a new session token and returns it with its stored form.
func (s *SessionService) issue(userID string, now time.Time) (string, domain.Token, error) {
	claims, err := jwtx.NewSessionClaims(userID, s.Issuer, s.TokenTTL, now)
	if err != nil {
		return "", domain.Token{}, err
	}

	raw, err := s.KeyManager.Signer().Sign(claims)
	if err != nil {
		return "", domain.Token{}, fmt.Errorf("sign token: %w", err)
	}

	return raw, domain.Token{
		Access:      jwtx.AccessAuth,
		Fingerprint: cryptox.FingerprintToken(raw),
		CreatedAt:   now,
		ExpiresAt:   claims.ExpiresAtTime(),
	}, nil
}

func normaliseEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", invalid("email", "is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return "", invalid("email", "is not a valid email address")
	}
	return email, nil
}
