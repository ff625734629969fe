package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/ads-api/internal/config"
	"github.com/phrazzld/ads-api/internal/platform/postgres"
	"github.com/phrazzld/ads-api/internal/service"
	"github.com/phrazzld/ads-api/internal/service/auth"
	"github.com/phrazzld/ads-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userService service.UserService
	authService service.AuthService
	adService   service.AdvertisementService
}

// newApplication wires stores and services on top of an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	adStore := postgres.NewPostgresAdvertisementStore(db, logger)
	transactor := store.NewSQLTransactor(db)

	app := newApplicationWithStores(cfg, logger, userStore, adStore, transactor, hasher, hasher, jwtService)
	app.db = db

	logger.Info("application initialized successfully")
	return app, nil
}

// newApplicationWithStores builds the service layer from already constructed
// dependencies. It needs no database, which keeps the router testable.
func newApplicationWithStores(
	cfg *config.Config,
	logger *slog.Logger,
	userStore store.UserStore,
	adStore store.AdvertisementStore,
	transactor store.Transactor,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
) *application {
	queryTimeout := time.Duration(cfg.Database.QueryTimeoutSeconds) * time.Second

	userService := service.NewUserService(userStore, transactor, hasher, queryTimeout, logger)
	return &application{
		config:      cfg,
		logger:      logger,
		userService: userService,
		authService: service.NewAuthService(userService, verifier, jwtService, logger),
		adService: service.NewAdvertisementService(adStore, userStore, transactor,
			service.AdvertisementServiceConfig{
				QueryTimeout: queryTimeout,
				MaxPerPage:   cfg.Pagination.MaxPerPage,
			}, logger),
	}
}

// Run serves HTTP until ctx is canceled, then shuts down and releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
