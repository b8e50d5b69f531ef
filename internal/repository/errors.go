// Package repository defines error types shared across repositories.
// These sentinel values let handlers distinguish failure scenarios: for
// example ErrForbidden indicates the caller does not own the targeted
// resource, while ErrConflict signals that a write cannot proceed given
// the record's current state (an illegal order-status transition, a
// duplicate identity).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because of
// conflicting state, such as completing an order that is no longer
// pending.  Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when registering with a username that is
// already taken.
var ErrUsernameExists = errors.New("username already exists")

// ErrSlugExists is returned when a tour slug collides with an existing
// one.
var ErrSlugExists = errors.New("slug already exists")
