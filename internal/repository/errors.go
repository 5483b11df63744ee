// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound maps onto a 404 response, while ErrMediaInUse
// signals that a media record is still referenced by page content and
// must not be deleted.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a record addressed by ID (or by unique key)
// does not exist. Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registering a user with an email that is
// already taken. Handlers translate this into an HTTP 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateSection is returned when creating a page content section whose
// (page, section) pair already exists. Handlers translate this into an
// HTTP 400 response.
var ErrDuplicateSection = errors.New("page section already exists")

// ErrMediaInUse is returned when deleting a media record whose in-use flag
// is set. Handlers translate this into an HTTP 400 response and leave the
// stored file untouched.
var ErrMediaInUse = errors.New("media is in use")

// isDuplicate reports whether err is a MySQL duplicate-key error (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
