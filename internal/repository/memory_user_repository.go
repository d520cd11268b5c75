package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/directory-admin/internal/domain"
)

// MemoryUserDirectory keeps users in process memory. Records are copied on
// the way in and out so callers never share state with the store.
type MemoryUserDirectory struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	order []string
	now   func() time.Time
}

// NewMemoryUserDirectory returns an empty in-memory directory.
func NewMemoryUserDirectory() *MemoryUserDirectory {
	return &MemoryUserDirectory{
		users: make(map[string]*domain.User),
		now:   time.Now,
	}
}

func (r *MemoryUserDirectory) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user.Clone(), nil
}

func (r *MemoryUserDirectory) FindAll(_ context.Context, filter UserFilter) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.User
	for _, id := range r.order {
		user := r.users[id]
		if filter.matches(user) {
			result = append(result, *user.Clone())
		}
	}
	return result, nil
}

func (r *MemoryUserDirectory) Save(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if ok {
		user.Role = existing.Role
	}
	if err := user.Validate(); err != nil {
		return err
	}

	now := r.now().UTC()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if ok {
		user.CreatedAt = existing.CreatedAt
	} else {
		user.CreatedAt = now
		r.order = append(r.order, user.ID)
	}
	user.UpdatedAt = now
	r.users[user.ID] = user.Clone()
	return nil
}

func (r *MemoryUserDirectory) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryUserDirectory) Count(_ context.Context, filter UserFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, user := range r.users {
		if filter.matches(user) {
			count++
		}
	}
	return count, nil
}

func (f UserFilter) matches(user *domain.User) bool {
	if f.Role != nil && user.Role != *f.Role {
		return false
	}
	if f.Banned != nil && user.Banned != *f.Banned {
		return false
	}
	return true
}
