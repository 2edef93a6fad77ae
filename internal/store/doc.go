// Package store defines the persistence contract for user documents.
//
// A user document carries its credential list inline, so every store
// implementation reads and writes a user together with its credentials in a
// single operation. Implementations live under internal/platform and must
// enforce email uniqueness themselves (unique index or equivalent), reporting
// violations as ErrEmailExists.
package store
