package repository

import "errors"

// ErrNotFound is returned by repositories when no row matches.
// For the conditional credential and ticket operations it also covers the
// lost-race case: the WHERE clause no longer matched by the time the
// statement ran.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned on unique-constraint violations
// (duplicate email/handle, duplicate membership).
var ErrConflict = errors.New("conflict")
