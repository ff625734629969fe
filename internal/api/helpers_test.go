package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/ads-api/internal/api"
	apiMiddleware "github.com/phrazzld/ads-api/internal/api/middleware"
	"github.com/phrazzld/ads-api/internal/api/shared"
	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/mocks"
	"github.com/phrazzld/ads-api/internal/service"
	"github.com/phrazzld/ads-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-chars-long"

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

type testEnv struct {
	router  http.Handler
	users   *mocks.MockUserStore
	ads     *mocks.MockAdvertisementStore
	userSvc service.UserService
	authSvc service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := tickingClock()
	users := mocks.NewMockUserStore()
	users.Now = clock
	ads := mocks.NewMockAdvertisementStore(users)
	ads.Now = clock
	hasher := &mocks.MockPasswordHasher{}
	tr := &mocks.NoopTransactor{}

	userSvc := service.NewUserService(users, tr, hasher, time.Second, nil)
	authSvc := service.NewAuthService(userSvc, hasher,
		auth.NewTestJWTService(testSecret, 30*time.Minute, nil), nil)
	adSvc := service.NewAdvertisementService(ads, users, tr,
		service.AdvertisementServiceConfig{QueryTimeout: time.Second, MaxPerPage: domain.MaxPerPage}, nil)

	authHandler := api.NewAuthHandler(userSvc, authSvc, nil)
	adHandler := api.NewAdvertisementHandler(adSvc, domain.DefaultPerPage, nil)
	authMW := apiMiddleware.NewAuthMiddleware(authSvc)

	r := chi.NewRouter()
	r.Use(apiMiddleware.TraceMiddleware(nil))
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/ads", adHandler.List)
		r.Get("/ads/{id}", adHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)
			r.Get("/auth/me", authHandler.Me)
			r.Post("/ads", adHandler.Create)
			r.Put("/ads/{id}", adHandler.Update)
			r.Patch("/ads/{id}", adHandler.Update)
			r.Delete("/ads/{id}", adHandler.Delete)
		})
	})

	return &testEnv{router: r, users: users, ads: ads, userSvc: userSvc, authSvc: authSvc}
}

// do sends a request with an optional JSON body and bearer token.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// registerAndLogin creates a user with password "secret1" and returns it
// with a valid token.
func (e *testEnv) registerAndLogin(t *testing.T, username string) (*domain.User, string) {
	t.Helper()

	ctx := context.Background()
	user, err := e.userSvc.Register(ctx, username, username+"@example.com", "secret1")
	require.NoError(t, err)
	res, err := e.authSvc.Login(ctx, username, "secret1")
	require.NoError(t, err)
	return user, res.Token
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func fieldsOf(details []shared.FieldError) []string {
	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.Field)
	}
	return fields
}
