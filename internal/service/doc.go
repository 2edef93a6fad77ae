// Package service contains the application use cases. UserService owns the
// User aggregate and its embedded credentials: it enforces email uniqueness,
// protects passwords through an injected hasher and performs every mutation as
// a read-modify-write of a single user document through store.UserStore.
//
// The service depends on domain entities and the store interfaces, never on a
// concrete storage engine.
package service
