package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/ads-api/internal/mocks"
	"github.com/phrazzld/ads-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewApplication_RejectsShortSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = "short"

	app, err := newApplication(cfg, discardLogger(), nil)
	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestNewApplication_RejectsBadBcryptCost(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.BcryptCost = 99

	app, err := newApplication(cfg, discardLogger(), nil)
	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestNewApplicationWithStores_WiresServices(t *testing.T) {
	cfg := testConfig()
	users := mocks.NewMockUserStore()
	hasher := &mocks.MockPasswordHasher{}

	app := newApplicationWithStores(cfg, discardLogger(), users, mocks.NewMockAdvertisementStore(users),
		&mocks.NoopTransactor{}, hasher, hasher, auth.NewMockJWTService("alice"))

	require.NotNil(t, app)
	assert.NotNil(t, app.userService)
	assert.NotNil(t, app.authService)
	assert.NotNil(t, app.adService)
	assert.Nil(t, app.db)

	app.cleanup()
}
