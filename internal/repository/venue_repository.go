// Package repository contains data access logic separated from HTTP handlers.
// This file holds the venue queries: CRUD plus the listing and search reads
// that carry an upcoming show count per venue.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// VenueCount is a venue row reduced to what list pages need, plus the
// number of shows starting at or after the evaluation instant.
type VenueCount struct {
	ID            uint64
	Name          string
	City          string
	State         string
	UpcomingShows int
}

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db DBTX
}

// NewVenueRepo constructs a VenueRepo over a pool or a transaction.
func NewVenueRepo(db DBTX) *VenueRepo {
	return &VenueRepo{db: db}
}

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link,
	website, genres, seeking_talent, seeking_description`

func scanVenue(row interface{ Scan(...any) error }) (*model.Venue, error) {
	var (
		v      model.Venue
		genres string
	)
	if err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink,
		&v.FacebookLink, &v.Website, &genres, &v.SeekingTalent, &v.SeekingDescription); err != nil {
		return nil, err
	}
	v.Genres = model.SplitGenres(genres)
	return &v, nil
}

// Create inserts a venue and assigns the generated id back to v.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link,
	           website, genres, seeking_talent, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
		v.FacebookLink, v.Website, model.JoinGenres(v.Genres), v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID fetches a venue by id.  It returns ErrVenueNotFound if no row
// matches.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	q := `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// Update overwrites every mutable column of the venue with id v.ID.
// Callers check existence first: MySQL reports zero affected rows when
// nothing changed, so RowsAffected cannot signal a missing row here.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
	           SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?,
	               facebook_link = ?, website = ?, genres = ?, seeking_talent = ?, seeking_description = ?
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
		v.FacebookLink, v.Website, model.JoinGenres(v.Genres), v.SeekingTalent, v.SeekingDescription, v.ID)
	return err
}

// Delete removes the venue row.  It returns ErrVenueNotFound when no row
// was deleted.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// ListWithUpcoming returns every venue with its upcoming show count,
// ordered by state, city and name.
func (r *VenueRepo) ListWithUpcoming(ctx context.Context, now time.Time) ([]VenueCount, error) {
	const q = `SELECT v.id, v.name, v.city, v.state, COUNT(s.id)
	           FROM venues v
	           LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time >= ?
	           GROUP BY v.id, v.name, v.city, v.state
	           ORDER BY v.state, v.city, v.name, v.id`
	return r.queryCounts(ctx, q, now)
}

// SearchByName returns venues whose name contains term, ignoring case,
// ordered by name.
func (r *VenueRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]VenueCount, error) {
	const q = `SELECT v.id, v.name, v.city, v.state, COUNT(s.id)
	           FROM venues v
	           LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time >= ?
	           GROUP BY v.id, v.name, v.city, v.state
	           ORDER BY v.name, v.id`
	all, err := r.queryCounts(ctx, q, now)
	if err != nil {
		return nil, err
	}
	out := []VenueCount{}
	for _, v := range all {
		if nameContains(v.Name, term) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *VenueRepo) queryCounts(ctx context.Context, q string, args ...any) ([]VenueCount, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []VenueCount{}
	for rows.Next() {
		var v VenueCount
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.UpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
