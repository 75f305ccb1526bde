package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
)

// Summary is one entry of a venue area or a search result.
type Summary struct {
	ID               uint64
	Name             string
	NumUpcomingShows int
}

// Area groups the venues sharing one (city, state) pair.
type Area struct {
	City   string
	State  string
	Venues []Summary
}

// SearchResult is the answer to a name search.  Count always equals
// len(Data).
type SearchResult struct {
	Count int
	Data  []Summary
}

// ArtistShow is a show seen from its venue: the counterpart is the artist.
type ArtistShow struct {
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

// VenueShow is a show seen from its artist.
type VenueShow struct {
	VenueID        uint64
	VenueName      string
	VenueImageLink string
	StartTime      time.Time
}

// VenueDetail is the venue page view model.
type VenueDetail struct {
	model.Venue
	UpcomingShows      []ArtistShow
	PastShows          []ArtistShow
	UpcomingShowsCount int
	PastShowsCount     int
}

// ArtistDetail is the artist page view model.
type ArtistDetail struct {
	model.Artist
	UpcomingShows      []VenueShow
	PastShows          []VenueShow
	UpcomingShowsCount int
	PastShowsCount     int
}

// ShowEntry is one row of the full show list.
type ShowEntry struct {
	VenueID         uint64
	VenueName       string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

// ListVenueAreas returns every venue grouped by (city, state).
func (d *Directory) ListVenueAreas(ctx context.Context) ([]Area, error) {
	now := d.Now()
	var rows []repository.VenueCount
	err := d.withConn(ctx, "list venues", func(conn *sql.Conn) error {
		var err error
		rows, err = repository.NewVenueRepo(conn).ListWithUpcoming(ctx, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return GroupByArea(rows), nil
}

// GroupByArea partitions venues by exact, case-sensitive (city, state).
// Groups are sorted by state then city and venues by name, so every venue
// lands in exactly one group and no two groups share a key.
func GroupByArea(rows []repository.VenueCount) []Area {
	type key struct{ city, state string }
	index := map[key]int{}
	areas := []Area{}
	for _, r := range rows {
		k := key{r.City, r.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, Area{City: r.City, State: r.State, Venues: []Summary{}})
		}
		areas[i].Venues = append(areas[i].Venues, Summary{ID: r.ID, Name: r.Name, NumUpcomingShows: r.UpcomingShows})
	}
	sort.SliceStable(areas, func(i, j int) bool {
		if areas[i].State != areas[j].State {
			return areas[i].State < areas[j].State
		}
		return areas[i].City < areas[j].City
	})
	for _, a := range areas {
		sort.SliceStable(a.Venues, func(i, j int) bool { return a.Venues[i].Name < a.Venues[j].Name })
	}
	return areas
}

// SearchVenues matches term against venue names, ignoring case.
func (d *Directory) SearchVenues(ctx context.Context, term string) (SearchResult, error) {
	now := d.Now()
	var rows []repository.VenueCount
	err := d.withConn(ctx, "search venues", func(conn *sql.Conn) error {
		var err error
		rows, err = repository.NewVenueRepo(conn).SearchByName(ctx, term, now)
		return err
	})
	if err != nil {
		return SearchResult{Data: []Summary{}}, err
	}
	data := make([]Summary, 0, len(rows))
	for _, r := range rows {
		data = append(data, Summary{ID: r.ID, Name: r.Name, NumUpcomingShows: r.UpcomingShows})
	}
	return SearchResult{Count: len(data), Data: data}, nil
}

// SearchArtists matches term against artist names, ignoring case.
func (d *Directory) SearchArtists(ctx context.Context, term string) (SearchResult, error) {
	now := d.Now()
	var rows []repository.ArtistCount
	err := d.withConn(ctx, "search artists", func(conn *sql.Conn) error {
		var err error
		rows, err = repository.NewArtistRepo(conn).SearchByName(ctx, term, now)
		return err
	})
	if err != nil {
		return SearchResult{Data: []Summary{}}, err
	}
	data := make([]Summary, 0, len(rows))
	for _, r := range rows {
		data = append(data, Summary{ID: r.ID, Name: r.Name, NumUpcomingShows: r.UpcomingShows})
	}
	return SearchResult{Count: len(data), Data: data}, nil
}

// ListArtists returns id and name of every artist.
func (d *Directory) ListArtists(ctx context.Context) ([]Summary, error) {
	var rows []repository.ArtistCount
	err := d.withConn(ctx, "list artists", func(conn *sql.Conn) error {
		var err error
		rows, err = repository.NewArtistRepo(conn).ListAll(ctx)
		return err
	})
	if err != nil {
		return []Summary{}, err
	}
	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		out = append(out, Summary{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// ListShows returns every show with both sides' names.
func (d *Directory) ListShows(ctx context.Context) ([]ShowEntry, error) {
	var rows []repository.ShowListing
	err := d.withConn(ctx, "list shows", func(conn *sql.Conn) error {
		var err error
		rows, err = repository.NewShowRepo(conn).ListAll(ctx)
		return err
	})
	if err != nil {
		return []ShowEntry{}, err
	}
	out := make([]ShowEntry, 0, len(rows))
	for _, s := range rows {
		out = append(out, ShowEntry{
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       s.StartTime,
		})
	}
	return out, nil
}

// Venue loads a single venue, for pre-filling the edit form.
func (d *Directory) Venue(ctx context.Context, id uint64) (*model.Venue, error) {
	var v *model.Venue
	err := d.withConn(ctx, "get venue", func(conn *sql.Conn) error {
		var err error
		v, err = repository.NewVenueRepo(conn).GetByID(ctx, id)
		if errors.Is(err, repository.ErrVenueNotFound) {
			return notFound(err)
		}
		return err
	})
	return v, err
}

// Artist loads a single artist, for pre-filling the edit form.
func (d *Directory) Artist(ctx context.Context, id uint64) (*model.Artist, error) {
	var a *model.Artist
	err := d.withConn(ctx, "get artist", func(conn *sql.Conn) error {
		var err error
		a, err = repository.NewArtistRepo(conn).GetByID(ctx, id)
		if errors.Is(err, repository.ErrArtistNotFound) {
			return notFound(err)
		}
		return err
	})
	return a, err
}

// VenueDetail assembles the venue page.  Both show lists are split with
// the same evaluation instant.
func (d *Directory) VenueDetail(ctx context.Context, id uint64) (*VenueDetail, error) {
	now := d.Now()
	var out *VenueDetail
	err := d.withConn(ctx, "venue detail", func(conn *sql.Conn) error {
		v, err := repository.NewVenueRepo(conn).GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrVenueNotFound) {
				return notFound(err)
			}
			return err
		}
		shows := repository.NewShowRepo(conn)
		up, err := shows.ListByVenue(ctx, id, now, repository.Upcoming)
		if err != nil {
			return err
		}
		past, err := shows.ListByVenue(ctx, id, now, repository.Past)
		if err != nil {
			return err
		}
		out = &VenueDetail{
			Venue:         *v,
			UpcomingShows: artistShows(up),
			PastShows:     artistShows(past),
		}
		out.UpcomingShowsCount = len(out.UpcomingShows)
		out.PastShowsCount = len(out.PastShows)
		return nil
	})
	return out, err
}

// ArtistDetail assembles the artist page.
func (d *Directory) ArtistDetail(ctx context.Context, id uint64) (*ArtistDetail, error) {
	now := d.Now()
	var out *ArtistDetail
	err := d.withConn(ctx, "artist detail", func(conn *sql.Conn) error {
		a, err := repository.NewArtistRepo(conn).GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrArtistNotFound) {
				return notFound(err)
			}
			return err
		}
		shows := repository.NewShowRepo(conn)
		up, err := shows.ListByArtist(ctx, id, now, repository.Upcoming)
		if err != nil {
			return err
		}
		past, err := shows.ListByArtist(ctx, id, now, repository.Past)
		if err != nil {
			return err
		}
		out = &ArtistDetail{
			Artist:        *a,
			UpcomingShows: venueShows(up),
			PastShows:     venueShows(past),
		}
		out.UpcomingShowsCount = len(out.UpcomingShows)
		out.PastShowsCount = len(out.PastShows)
		return nil
	})
	return out, err
}

func artistShows(rows []repository.ShowListing) []ArtistShow {
	out := make([]ArtistShow, 0, len(rows))
	for _, s := range rows {
		out = append(out, ArtistShow{ArtistID: s.ArtistID, ArtistName: s.ArtistName, ArtistImageLink: s.ArtistImageLink, StartTime: s.StartTime})
	}
	return out
}

func venueShows(rows []repository.ShowListing) []VenueShow {
	out := make([]VenueShow, 0, len(rows))
	for _, s := range rows {
		out = append(out, VenueShow{VenueID: s.VenueID, VenueName: s.VenueName, VenueImageLink: s.VenueImageLink, StartTime: s.StartTime})
	}
	return out
}
