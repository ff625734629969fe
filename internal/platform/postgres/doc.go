// Package postgres provides PostgreSQL implementations of the store
// interfaces, the mapping from PostgreSQL constraint violations to store
// errors, and the embedded schema migrations.
package postgres
