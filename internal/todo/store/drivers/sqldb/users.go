package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
)

type usersRepo struct {
	db *sql.DB
	d  Dialect
}

const userColumns = `id, email, password_hash, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			r.d.rebind(`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?)`),
			u.ID, u.Email, u.PasswordHash, toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
		)
		if err != nil {
			if r.d.IsUniqueViolation(err) {
				return store.ErrAlreadyExists
			}
			return fmt.Errorf("insert user: %w", err)
		}

		for _, t := range u.Tokens {
			if err := insertToken(ctx, tx, r.d, u.ID, t); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *usersRepo) GetUserByToken(ctx context.Context, userID, access, fingerprint string) (domain.User, error) {
	return r.getUser(ctx, `
		SELECT u.id, u.email, u.password_hash, u.created_at, u.updated_at
		FROM users u
		JOIN user_tokens t ON t.user_id = u.id
		WHERE u.id = ? AND t.access = ? AND t.fingerprint = ?`,
		userID, access, fingerprint,
	)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, hash string, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		r.d.rebind(`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`),
		hash, toMillis(now), userID,
	)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) AddToken(ctx context.Context, userID string, t domain.Token) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			r.d.rebind(`UPDATE users SET updated_at = ? WHERE id = ?`),
			toMillis(t.CreatedAt), userID,
		)
		if err != nil {
			return fmt.Errorf("touch user: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return store.ErrNotFound
		}
		return insertToken(ctx, tx, r.d, userID, t)
	})
}

func (r *usersRepo) RemoveToken(ctx context.Context, userID, fingerprint string) error {
	_, err := r.db.ExecContext(ctx,
		r.d.rebind(`DELETE FROM user_tokens WHERE user_id = ? AND fingerprint = ?`),
		userID, fingerprint,
	)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (r *usersRepo) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		r.d.rebind(`DELETE FROM user_tokens WHERE expires_at IS NOT NULL AND expires_at <= ?`),
		toMillis(now),
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return res.RowsAffected()
}

func (r *usersRepo) getUser(ctx context.Context, query string, args ...any) (domain.User, error) {
	var (
		u                    domain.User
		createdAt, updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, r.d.rebind(query), args...).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)

	u.Tokens, err = r.listTokens(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *usersRepo) listTokens(ctx context.Context, userID string) ([]domain.Token, error) {
	rows, err := r.db.QueryContext(ctx,
		r.d.rebind(`SELECT access, fingerprint, created_at, expires_at
			FROM user_tokens WHERE user_id = ? ORDER BY created_at, fingerprint`),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	defer rows.Close()

	var tokens []domain.Token
	for rows.Next() {
		var (
			t         domain.Token
			createdAt int64
			expiresAt sql.NullInt64
		)
		if err := rows.Scan(&t.Access, &t.Fingerprint, &createdAt, &expiresAt); err != nil {
			return nil, err
		}
		t.CreatedAt = fromMillis(createdAt)
		t.ExpiresAt = mapNullTimePtr(expiresAt)
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func insertToken(ctx context.Context, tx *sql.Tx, d Dialect, userID string, t domain.Token) error {
	_, err := tx.ExecContext(ctx,
		d.rebind(`INSERT INTO user_tokens (user_id, access, fingerprint, created_at, expires_at) VALUES (?, ?, ?, ?, ?)`),
		userID, t.Access, t.Fingerprint, toMillis(t.CreatedAt), mapOptionalTime(t.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}
