// Package repository contains data access logic for Show domain operations.
// A Show joins one venue and one artist at a start time; whether it is
// upcoming or past is decided by the caller-supplied evaluation instant.
package repository

import (
	"context"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// Period selects one side of the upcoming/past partition.
type Period int

const (
	// Upcoming matches start_time >= now.
	Upcoming Period = iota
	// Past matches start_time < now.
	Past
)

func (p Period) predicate() string {
	if p == Past {
		return "s.start_time < ?"
	}
	return "s.start_time >= ?"
}

// ShowListing is a show joined with the names and images of both sides.
type ShowListing struct {
	ID              uint64
	VenueID         uint64
	VenueName       string
	VenueImageLink  string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db DBTX
}

func NewShowRepo(db DBTX) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a show and assigns the generated id.  Unknown venue or
// artist ids are rejected by the foreign keys, not checked here.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.VenueID, s.ArtistID, s.StartTime.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

const showListingSelect = `SELECT s.id, v.id, v.name, v.image_link, a.id, a.name, a.image_link, s.start_time
	FROM shows s
	JOIN venues v ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id`

// ListAll returns every show ordered by start time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowListing, error) {
	return r.list(ctx, showListingSelect+` ORDER BY s.start_time, s.id`)
}

// ListByVenue returns the venue's shows on one side of now.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64, now time.Time, p Period) ([]ShowListing, error) {
	q := showListingSelect + ` WHERE s.venue_id = ? AND ` + p.predicate() + ` ORDER BY s.start_time, s.id`
	return r.list(ctx, q, venueID, now)
}

// ListByArtist returns the artist's shows on one side of now.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64, now time.Time, p Period) ([]ShowListing, error) {
	q := showListingSelect + ` WHERE s.artist_id = ? AND ` + p.predicate() + ` ORDER BY s.start_time, s.id`
	return r.list(ctx, q, artistID, now)
}

// CountByVenue counts the venue's shows on one side of now.
func (r *ShowRepo) CountByVenue(ctx context.Context, venueID uint64, now time.Time, p Period) (int, error) {
	var n int
	q := `SELECT COUNT(*) FROM shows s WHERE s.venue_id = ? AND ` + p.predicate()
	err := r.db.QueryRowContext(ctx, q, venueID, now).Scan(&n)
	return n, err
}

// CountByArtist counts the artist's shows on one side of now.
func (r *ShowRepo) CountByArtist(ctx context.Context, artistID uint64, now time.Time, p Period) (int, error) {
	var n int
	q := `SELECT COUNT(*) FROM shows s WHERE s.artist_id = ? AND ` + p.predicate()
	err := r.db.QueryRowContext(ctx, q, artistID, now).Scan(&n)
	return n, err
}

// DeleteByVenue removes every show hosted by the venue and reports how
// many were removed.
func (r *ShowRepo) DeleteByVenue(ctx context.Context, venueID uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, venueID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ShowRepo) list(ctx context.Context, q string, args ...any) ([]ShowListing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ShowListing{}
	for rows.Next() {
		var s ShowListing
		if err := rows.Scan(&s.ID, &s.VenueID, &s.VenueName, &s.VenueImageLink,
			&s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime); err != nil {
			return nil, err
		}
		s.StartTime = s.StartTime.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
