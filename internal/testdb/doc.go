// Package testdb connects integration tests to a real PostgreSQL database.
//
// Tests call Open to get a migrated connection pool and WithTx to run each
// case inside a transaction that is always rolled back, so cases stay
// isolated and leave no rows behind. Without a configured database URL,
// Open skips the test locally and fails it in CI.
package testdb
