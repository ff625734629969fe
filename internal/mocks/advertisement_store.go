package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/store"
)

// MockAdvertisementStore is an in-memory store.AdvertisementStore that joins
// owners from Users.
type MockAdvertisementStore struct {
	Users *MockUserStore

	// Err, when set, is returned by every method.
	Err error

	mu     sync.Mutex
	ads    map[int64]*domain.Advertisement
	nextID int64

	// Now stamps CreatedAt on created advertisements.
	Now func() time.Time
}

var _ store.AdvertisementStore = (*MockAdvertisementStore)(nil)

// NewMockAdvertisementStore creates an empty store backed by users.
func NewMockAdvertisementStore(users *MockUserStore) *MockAdvertisementStore {
	return &MockAdvertisementStore{
		Users: users,
		ads:   make(map[int64]*domain.Advertisement),
		Now:   time.Now,
	}
}

// Create implements store.AdvertisementStore.
func (m *MockAdvertisementStore) Create(ctx context.Context, ad *domain.Advertisement) error {
	if m.Err != nil {
		return m.Err
	}
	if _, err := m.Users.GetByID(ctx, ad.OwnerID); err != nil {
		return store.ErrUserNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	ad.ID = m.nextID
	ad.CreatedAt = m.Now().UTC()
	stored := *ad
	stored.Owner = nil
	m.ads[ad.ID] = &stored
	return nil
}

// GetByID implements store.AdvertisementStore.
func (m *MockAdvertisementStore) GetByID(ctx context.Context, id int64) (*domain.Advertisement, error) {
	ad, err := m.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.withOwner(ctx, ad)
}

// GetByIDForUpdate implements store.AdvertisementStore.
func (m *MockAdvertisementStore) GetByIDForUpdate(_ context.Context, id int64) (*domain.Advertisement, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ad, ok := m.ads[id]
	if !ok {
		return nil, store.ErrAdvertisementNotFound
	}
	cp := *ad
	return &cp, nil
}

// List implements store.AdvertisementStore.
func (m *MockAdvertisementStore) List(ctx context.Context, limit, offset int) ([]*domain.Advertisement, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	all := make([]*domain.Advertisement, 0, len(m.ads))
	for _, ad := range m.ads {
		cp := *ad
		all = append(all, &cp)
	}
	m.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if offset >= len(all) {
		return []*domain.Advertisement{}, nil
	}
	end := min(offset+limit, len(all))

	page := all[offset:end]
	for i, ad := range page {
		joined, err := m.withOwner(ctx, ad)
		if err != nil {
			return nil, err
		}
		page[i] = joined
	}
	return page, nil
}

// Count implements store.AdvertisementStore.
func (m *MockAdvertisementStore) Count(context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ads), nil
}

// Update implements store.AdvertisementStore.
func (m *MockAdvertisementStore) Update(_ context.Context, ad *domain.Advertisement) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.ads[ad.ID]
	if !ok {
		return store.ErrAdvertisementNotFound
	}
	stored.Title = ad.Title
	stored.Description = ad.Description
	return nil
}

// Delete implements store.AdvertisementStore.
func (m *MockAdvertisementStore) Delete(_ context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ads[id]; !ok {
		return store.ErrAdvertisementNotFound
	}
	delete(m.ads, id)
	return nil
}

// WithTx implements store.AdvertisementStore by returning itself.
func (m *MockAdvertisementStore) WithTx(*sql.Tx) store.AdvertisementStore {
	return m
}

func (m *MockAdvertisementStore) withOwner(ctx context.Context, ad *domain.Advertisement) (*domain.Advertisement, error) {
	owner, err := m.Users.GetByID(ctx, ad.OwnerID)
	if err != nil {
		return nil, err
	}
	ad.Owner = owner
	return ad, nil
}
