package postgres

import (
	"context"
	"errors"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/user"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.pool.QueryRow(
		ctx,
		`SELECT email, name, password_hash, preferences
         FROM users
         WHERE email = $1`,
		email,
	).Scan(
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Preferences,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, repo.ErrUserNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// Upsert is last-writer-wins on email.
func (r *UsersRepo) Upsert(ctx context.Context, u user.User) error {
	prefs := u.PreferencesOrEmpty()

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (email, name, password_hash, preferences, created_at, updated_at)
         VALUES ($1, $2, $3, $4, now(), now())
         ON CONFLICT (email) DO UPDATE
         SET name = EXCLUDED.name,
             password_hash = EXCLUDED.password_hash,
             preferences = EXCLUDED.preferences,
             updated_at = now()`,
		u.Email, u.Name, u.PasswordHash, prefs,
	)

	return err
}

func (r *UsersRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
