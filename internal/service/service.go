// Package service holds the booking directory's query and mutation layers.
// Reads shape rows into page view models; writes validate forms and run
// inside a single transaction that is committed on success and rolled
// back on any failure.
package service

import (
	"context"
	"database/sql"
	"io"
	"log"
	"time"

	"github.com/iliyamo/fyyur/internal/database"
)

// Clock returns the current instant.
type Clock func() time.Time

// Options configures a Directory.  Zero values fall back to time.Now, a
// no-op publisher and a discarding logger.
type Options struct {
	Driver    string
	Clock     Clock
	Publisher Publisher
	Logger    *log.Logger
}

// Directory serves reads and writes for venues, artists and shows.  It
// holds no per-request state; every call acquires and releases its own
// connection or transaction.
type Directory struct {
	db     *sql.DB
	txOpts *sql.TxOptions
	clock  Clock
	events Publisher
	log    *log.Logger
}

// NewDirectory constructs a Directory and panics if db is nil.
func NewDirectory(db *sql.DB, opts Options) *Directory {
	if db == nil {
		panic("nil database passed to NewDirectory")
	}
	d := &Directory{
		db:     db,
		clock:  opts.Clock,
		events: opts.Publisher,
		log:    opts.Logger,
	}
	if d.clock == nil {
		d.clock = time.Now
	}
	if d.events == nil {
		d.events = NopPublisher{}
	}
	if d.log == nil {
		d.log = log.New(io.Discard, "", 0)
	}
	// SQLite only offers serializable transactions.
	if opts.Driver == database.DriverMySQL {
		d.txOpts = &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	}
	return d
}

// Now returns the evaluation instant used to split upcoming from past
// shows: UTC, millisecond precision.  Each service call reads it once.
func (d *Directory) Now() time.Time {
	return d.clock().UTC().Truncate(time.Millisecond)
}

// withTx runs fn in a transaction.  The transaction is committed when fn
// succeeds and rolled back otherwise; errors that are not already
// classified come back as *PersistenceError.
func (d *Directory) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, d.txOpts)
	if err != nil {
		return classify(op, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				d.log.Printf("%s: rollback failed: %v", op, rbErr)
			}
		}
	}()
	if err = fn(tx); err != nil {
		return classify(op, err)
	}
	if err = tx.Commit(); err != nil {
		return classify(op, err)
	}
	return nil
}

// withConn runs fn on a connection taken from the pool for the duration
// of one read and always returns it.
func (d *Directory) withConn(ctx context.Context, op string, fn func(conn *sql.Conn) error) error {
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return classify(op, err)
	}
	defer conn.Close()
	return classify(op, fn(conn))
}
