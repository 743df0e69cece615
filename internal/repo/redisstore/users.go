// Package redisstore keeps one JSON document per user under "user:<email>".
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/user"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "user:"

// record is the stored shape; user.User hides the hash from JSON.
type record struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"passwordHash"`
	Preferences  []string `json:"preferences"`
}

type UsersRepo struct {
	rdb *redis.Client
}

func NewUsersRepo(rdb *redis.Client) *UsersRepo {
	return &UsersRepo{rdb: rdb}
}

func Key(email string) string {
	return keyPrefix + email
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	raw, err := r.rdb.Get(ctx, Key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return user.User{}, repo.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("redis get %q: %w", email, err)
	}

	return decode(raw)
}

// Upsert stores the record without expiry.
func (r *UsersRepo) Upsert(ctx context.Context, u user.User) error {
	raw, err := encode(u)
	if err != nil {
		return err
	}

	if err := r.rdb.Set(ctx, Key(u.Email), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", u.Email, err)
	}

	return nil
}

func (r *UsersRepo) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func encode(u user.User) ([]byte, error) {
	raw, err := json.Marshal(record{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Preferences:  u.PreferencesOrEmpty(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode user %q: %w", u.Email, err)
	}
	return raw, nil
}

func decode(raw []byte) (user.User, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return user.User{}, fmt.Errorf("decode user: %w", err)
	}

	return user.User{
		Name:         rec.Name,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Preferences:  rec.Preferences,
	}, nil
}
