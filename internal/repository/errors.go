// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// service and handlers to tell a missing row apart from a store failure.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// ErrVenueNotFound is returned when no venue has the requested id.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when no artist has the requested id.
var ErrArtistNotFound = errors.New("artist not found")

// DBTX is satisfied by both *sql.DB and *sql.Tx so a repository can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// nameContains reports whether name contains term, ignoring case.  Both
// sides are folded in Go because SQLite's LOWER only folds ASCII letters.
func nameContains(name, term string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(term))
}
