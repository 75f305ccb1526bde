package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

// CreateVenue validates f and inserts the venue.  An invalid form returns
// *InvalidDataError without touching the store.
func (d *Directory) CreateVenue(ctx context.Context, f form.VenueForm) (*model.Venue, error) {
	res := f.Validate()
	if !res.OK() {
		return nil, &InvalidDataError{Errors: res.Errors}
	}
	v := res.Record
	err := d.withTx(ctx, "create venue", func(tx *sql.Tx) error {
		return repository.NewVenueRepo(tx).Create(ctx, &v)
	})
	if err != nil {
		return nil, err
	}
	d.publish(ctx, queue.ListingEvent{Kind: queue.VenueCreated, ID: v.ID, Name: v.Name})
	return &v, nil
}

// UpdateVenue replaces every mutable field of venue id with the submitted
// values.  The submitted values are staged in a candidate record and
// validated there; the stored row changes only when validation passes and
// the transaction commits.  The candidate is returned together with an
// *InvalidDataError so the form can be shown again as typed.
func (d *Directory) UpdateVenue(ctx context.Context, id uint64, f form.VenueForm) (*model.Venue, error) {
	var candidate *model.Venue
	err := d.withTx(ctx, "update venue", func(tx *sql.Tx) error {
		venues := repository.NewVenueRepo(tx)
		if _, err := venues.GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrVenueNotFound) {
				return notFound(err)
			}
			return err
		}
		res := f.Validate()
		staged := res.Record
		staged.ID = id
		candidate = &staged
		if !res.OK() {
			return &InvalidDataError{Errors: res.Errors}
		}
		return venues.Update(ctx, candidate)
	})
	if err != nil {
		return candidate, err
	}
	d.publish(ctx, queue.ListingEvent{Kind: queue.VenueUpdated, ID: id, Name: candidate.Name})
	return candidate, nil
}

// DeleteVenue removes a venue together with the shows it hosts, in one
// transaction.
func (d *Directory) DeleteVenue(ctx context.Context, id uint64) error {
	var name string
	err := d.withTx(ctx, "delete venue", func(tx *sql.Tx) error {
		venues := repository.NewVenueRepo(tx)
		v, err := venues.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrVenueNotFound) {
				return notFound(err)
			}
			return err
		}
		name = v.Name
		if _, err := repository.NewShowRepo(tx).DeleteByVenue(ctx, id); err != nil {
			return err
		}
		return venues.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	d.publish(ctx, queue.ListingEvent{Kind: queue.VenueDeleted, ID: id, Name: name})
	return nil
}

// CreateArtist validates f and inserts the artist.
func (d *Directory) CreateArtist(ctx context.Context, f form.ArtistForm) (*model.Artist, error) {
	res := f.Validate()
	if !res.OK() {
		return nil, &InvalidDataError{Errors: res.Errors}
	}
	a := res.Record
	err := d.withTx(ctx, "create artist", func(tx *sql.Tx) error {
		return repository.NewArtistRepo(tx).Create(ctx, &a)
	})
	if err != nil {
		return nil, err
	}
	d.publish(ctx, queue.ListingEvent{Kind: queue.ArtistCreated, ID: a.ID, Name: a.Name})
	return &a, nil
}

// UpdateArtist is UpdateVenue for artists.
func (d *Directory) UpdateArtist(ctx context.Context, id uint64, f form.ArtistForm) (*model.Artist, error) {
	var candidate *model.Artist
	err := d.withTx(ctx, "update artist", func(tx *sql.Tx) error {
		artists := repository.NewArtistRepo(tx)
		if _, err := artists.GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrArtistNotFound) {
				return notFound(err)
			}
			return err
		}
		res := f.Validate()
		staged := res.Record
		staged.ID = id
		candidate = &staged
		if !res.OK() {
			return &InvalidDataError{Errors: res.Errors}
		}
		return artists.Update(ctx, candidate)
	})
	if err != nil {
		return candidate, err
	}
	d.publish(ctx, queue.ListingEvent{Kind: queue.ArtistUpdated, ID: id, Name: candidate.Name})
	return candidate, nil
}

// CreateShow inserts a show straight from the submitted values.  Venue and
// artist ids are not looked up first: unparsable input and foreign key
// rejections both surface as *PersistenceError.
func (d *Directory) CreateShow(ctx context.Context, f form.ShowForm) (*model.Show, error) {
	s, err := f.Show()
	if err != nil {
		return nil, &PersistenceError{Op: "create show", Err: err}
	}
	err = d.withTx(ctx, "create show", func(tx *sql.Tx) error {
		return repository.NewShowRepo(tx).Create(ctx, &s)
	})
	if err != nil {
		return nil, err
	}
	d.publish(ctx, queue.ListingEvent{
		Kind:      queue.ShowCreated,
		ID:        s.ID,
		VenueID:   s.VenueID,
		ArtistID:  s.ArtistID,
		StartTime: s.StartTime.UTC().Format(time.RFC3339),
	})
	return &s, nil
}
