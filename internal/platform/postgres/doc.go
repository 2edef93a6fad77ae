// Package postgres implements store.UserStore on PostgreSQL through the pgx
// database/sql driver. A user is one row of the users table; its credentials
// live in a JSONB column of that row, so every read and write covers the
// whole document.
//
// The schema is managed by goose migrations embedded from migrations/.
package postgres
