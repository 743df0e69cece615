// Package repo defines the user store contract shared by every storage driver.
package repo

import (
	"context"
	"errors"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/user"
)

var ErrUserNotFound = errors.New("user not found")

// UsersRepo is keyed by normalized email. Every call is a single-key
// operation; callers that change a record read it, modify the copy and
// write it back with Upsert.
type UsersRepo interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	// Upsert inserts u or replaces the record stored under u.Email.
	Upsert(ctx context.Context, u user.User) error
	Ping(ctx context.Context) error
}

// ObserveFunc wraps a single logical store operation, e.g. for metrics.
type ObserveFunc func(op string, fn func() error) error

type instrumented struct {
	next    UsersRepo
	observe ObserveFunc
}

// Instrument decorates r so every operation is reported through observe.
func Instrument(r UsersRepo, observe ObserveFunc) UsersRepo {
	if observe == nil {
		return r
	}
	return &instrumented{next: r, observe: observe}
}

func (i *instrumented) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := i.observe("users.get_by_email", func() error {
		var err error
		u, err = i.next.GetByEmail(ctx, email)
		return err
	})

	return u, err
}

func (i *instrumented) Upsert(ctx context.Context, u user.User) error {
	return i.observe("users.upsert", func() error {
		return i.next.Upsert(ctx, u)
	})
}

func (i *instrumented) Ping(ctx context.Context) error {
	return i.next.Ping(ctx)
}
