// Package store declares the persistence contracts for users and
// advertisements: the UserStore and AdvertisementStore interfaces, the
// Transactor that services run their reads and writes under, and the
// sentinel errors (ErrUserNotFound, ErrAdvertisementNotFound, ErrUserExists)
// that the HTTP layer maps to status codes.
//
// The Postgres implementations live in internal/platform/postgres.
package store
