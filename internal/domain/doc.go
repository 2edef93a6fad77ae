// Package domain contains the core business entities, value objects, and
// domain logic of the application: the User aggregate and the Credentials it
// owns. It is independent of any specific infrastructure or delivery mechanism.
package domain
