// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// authentication service and handlers to distinguish between failure
// scenarios without inspecting driver-specific errors. For example,
// ErrUsernameExists signals that registration lost the race on the
// users table's uniqueness constraint and should surface as a conflict.
package repository

import "errors"

// ErrUsernameExists is returned when an insert into the users table
// violates the UNIQUE constraint on username. Handlers should translate
// this into an HTTP 409 response.
var ErrUsernameExists = errors.New("username already exists")

// ErrNotFound is returned when a lookup matches no row. Callers decide
// how much of that to reveal; the login path deliberately collapses it
// with a failed password check.
var ErrNotFound = errors.New("not found")
