package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/user"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo"
)

// UsersRepo lives for the lifetime of the process.
type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User // {"email": user}
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	u, ok := r.items[email]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, repo.ErrUserNotFound
	}

	u.Preferences = slices.Clone(u.Preferences)
	return u, nil
}

func (r *UsersRepo) Upsert(_ context.Context, u user.User) error {
	u.Preferences = slices.Clone(u.Preferences)

	r.mu.Lock()
	r.items[u.Email] = u
	r.mu.Unlock()

	return nil
}

func (r *UsersRepo) Ping(context.Context) error {
	return nil
}

func (r *UsersRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
