// Package security holds the credential and bearer-token primitives of the
// NexoHub API: the password complexity rule, the bcrypt credential hasher and
// the HMAC JWT token service.
//
// Every type in this package is immutable after construction and safe for
// concurrent use.
package security
