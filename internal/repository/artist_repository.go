package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// ArtistCount pairs an artist with its upcoming show count.
type ArtistCount struct {
	ID            uint64
	Name          string
	UpcomingShows int
}

// ArtistRepo manages persistence for artists.  Artists are never deleted.
type ArtistRepo struct {
	db DBTX
}

func NewArtistRepo(db DBTX) *ArtistRepo {
	return &ArtistRepo{db: db}
}

const artistColumns = `id, name, city, state, phone, genres, image_link, facebook_link,
	website, seeking_venue, seeking_description`

func scanArtist(row interface{ Scan(...any) error }) (*model.Artist, error) {
	var (
		a      model.Artist
		genres string
	)
	if err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres, &a.ImageLink,
		&a.FacebookLink, &a.Website, &a.SeekingVenue, &a.SeekingDescription); err != nil {
		return nil, err
	}
	a.Genres = model.SplitGenres(genres)
	return &a, nil
}

// Create inserts an artist and assigns the generated id back to a.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, phone, genres, image_link, facebook_link,
	           website, seeking_venue, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, model.JoinGenres(a.Genres),
		a.ImageLink, a.FacebookLink, a.Website, a.SeekingVenue, a.SeekingDescription)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID returns ErrArtistNotFound if there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	q := `SELECT ` + artistColumns + ` FROM artists WHERE id = ?`
	a, err := scanArtist(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

// Update overwrites every mutable column of the artist with id a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists
	           SET name = ?, city = ?, state = ?, phone = ?, genres = ?, image_link = ?,
	               facebook_link = ?, website = ?, seeking_venue = ?, seeking_description = ?
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, model.JoinGenres(a.Genres),
		a.ImageLink, a.FacebookLink, a.Website, a.SeekingVenue, a.SeekingDescription, a.ID)
	return err
}

// ListAll returns every artist ordered by name.  Only id and name are
// loaded.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]ArtistCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM artists ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ArtistCount{}
	for rows.Next() {
		var a ArtistCount
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]ArtistCount, error) {
	const q = `SELECT a.id, a.name, COUNT(s.id)
	           FROM artists a
	           LEFT JOIN shows s ON s.artist_id = a.id AND s.start_time >= ?
	           GROUP BY a.id, a.name
	           ORDER BY a.name, a.id`
	rows, err := r.db.QueryContext(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ArtistCount{}
	for rows.Next() {
		var a ArtistCount
		if err := rows.Scan(&a.ID, &a.Name, &a.UpcomingShows); err != nil {
			return nil, err
		}
		if nameContains(a.Name, term) {
			out = append(out, a)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
