package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/mocks"
	"github.com/phrazzld/ads-api/internal/service"
	"github.com/stretchr/testify/require"
)

// tickingClock returns a clock that advances one second per call so that
// created_at ordering is deterministic.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

type fixture struct {
	users      *mocks.MockUserStore
	ads        *mocks.MockAdvertisementStore
	hasher     *mocks.MockPasswordHasher
	transactor *mocks.NoopTransactor
	userSvc    *service.UserServiceImpl
	adSvc      *service.AdvertisementServiceImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := tickingClock()
	users := mocks.NewMockUserStore()
	users.Now = clock
	ads := mocks.NewMockAdvertisementStore(users)
	ads.Now = clock
	hasher := &mocks.MockPasswordHasher{}
	tr := &mocks.NoopTransactor{}

	return &fixture{
		users:      users,
		ads:        ads,
		hasher:     hasher,
		transactor: tr,
		userSvc:    service.NewUserService(users, tr, hasher, time.Second, nil),
		adSvc: service.NewAdvertisementService(ads, users, tr,
			service.AdvertisementServiceConfig{QueryTimeout: time.Second, MaxPerPage: 100}, nil),
	}
}

func (f *fixture) register(t *testing.T, username string) *domain.User {
	t.Helper()

	user, err := f.userSvc.Register(context.Background(), username, username+"@example.com", "secret1")
	require.NoError(t, err)
	return user
}
