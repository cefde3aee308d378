// Package repository defines error types that are reused across the
// store implementations.  These sentinel values allow higher layers such
// as services and handlers to distinguish between different failure
// scenarios without knowing which store is in use.
package repository

import "errors"

// ErrNotFound is returned when an auction, user or favorite does not
// exist.  Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot be performed because of
// conflicting state, such as a duplicate favorite or deleting an auction
// that already has bids. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")
