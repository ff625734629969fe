package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/store"
)

// MockUserStore is an in-memory store.UserStore. Function fields override
// the default behavior of the matching method.
type MockUserStore struct {
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	ExistsFn        func(ctx context.Context, username, email string) (bool, error)

	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64

	// Now stamps CreatedAt on created users.
	Now func() time.Time
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an empty in-memory user store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users: make(map[int64]*domain.User),
		Now:   time.Now,
	}
}

// Create implements store.UserStore.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return store.ErrUserExists
		}
	}

	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = m.Now().UTC()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

// GetByID implements store.UserStore.
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// GetByUsername implements store.UserStore.
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// ExistsByUsernameOrEmail implements store.UserStore.
func (m *MockUserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, username, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// WithTx implements store.UserStore. The in-memory store has no
// transactions, so it returns itself.
func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore {
	return m
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}
