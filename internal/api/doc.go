// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the user service, translating HTTP concerns to service operations.
package api
