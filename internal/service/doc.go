// Package service holds the account and advertisement use cases.
//
// UserService registers users and looks them up. AuthService trades a
// username and password for a bearer token, and a token for its user.
// AdvertisementService creates, reads, lists, updates and deletes ads; the
// update and delete paths lock the row and check ownership before writing.
//
// Every operation runs under a store.Transactor with a per-call query
// timeout. Services depend only on the store interfaces, so tests swap in
// the fakes from internal/mocks or sqlmock-backed Postgres stores.
package service
