// Package sqlite stores users in a single SQLite file. Preferences are kept
// as a JSON array in a TEXT column.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/user"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var (
		u   user.User
		raw string
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT email, name, password_hash, preferences FROM users WHERE email = ?`, email,
	).Scan(&u.Email, &u.Name, &u.PasswordHash, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, repo.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("getting user %q: %w", email, err)
	}

	if err := json.Unmarshal([]byte(raw), &u.Preferences); err != nil {
		return user.User{}, fmt.Errorf("unmarshaling preferences for %q: %w", email, err)
	}

	return u, nil
}

func (r *UsersRepo) Upsert(ctx context.Context, u user.User) error {
	data, err := json.Marshal(u.PreferencesOrEmpty())
	if err != nil {
		return fmt.Errorf("marshaling preferences for %q: %w", u.Email, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (email, name, password_hash, preferences, created_at, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		 ON CONFLICT(email) DO UPDATE SET
		   name = excluded.name,
		   password_hash = excluded.password_hash,
		   preferences = excluded.preferences,
		   updated_at = CURRENT_TIMESTAMP`,
		u.Email, u.Name, u.PasswordHash, string(data),
	)
	if err != nil {
		return fmt.Errorf("upserting user %q: %w", u.Email, err)
	}

	return nil
}

func (r *UsersRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
