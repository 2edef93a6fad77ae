// Package mongodb implements store.UserStore on MongoDB. Each user is a single
// document of the users collection with its credentials embedded in the
// passwords array, and a unique index on email.
package mongodb
