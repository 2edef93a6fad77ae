// Package config loads server, database, security and metrics settings from
// KEYRING_* environment variables and an optional config.yaml, and validates
// them before the server starts.
package config
