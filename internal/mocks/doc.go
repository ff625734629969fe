// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout the application,
// facilitating consistent and DRY testing across the codebase. Instead of defining
// inline mocks in individual test files, these standardized mock implementations
// can be reused.
//
// Key Features:
//
//   - Consistent mock behavior across different test packages
//   - Simplified test setup with reusable mock implementations
//   - Reduced duplication of mock logic across test files
//   - Easy maintenance of mock behaviors in a central location
//
// Usage:
//
//	users := mocks.NewMockUserStore()
//	ads := mocks.NewMockAdvertisementStore(users)
//	svc := service.NewAdvertisementService(ads, users, &mocks.NoopTransactor{}, cfg, nil)
//
// The in-memory stores ignore transactions; use go-sqlmock when a test needs
// to observe commit and rollback.
package mocks
