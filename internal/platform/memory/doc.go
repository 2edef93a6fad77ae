// Package memory provides an in-process implementation of store.UserStore.
// It backs the "memory" database driver and serves as the fake store in
// service and API tests.
package memory
