package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/service"
	"github.com/iliyamo/fyyur/internal/view"
)

// ListArtists renders the id and name of every artist.
func (h *SiteHandler) ListArtists(c echo.Context) error {
	artists, err := h.Dir.ListArtists(c.Request().Context())
	if err != nil {
		h.logf(c, "list artists: %v", err)
	}
	return h.render(c, tplArtists, "Artists", artists)
}

// SearchArtists renders the artists whose name contains search_term.
func (h *SiteHandler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	res, err := h.Dir.SearchArtists(c.Request().Context(), term)
	if err != nil {
		h.logf(c, "search artists %q: %v", term, err)
	}
	return h.render(c, tplSearchArtists, "Artists", view.SearchData{Term: term, Results: res})
}

// ShowArtist renders the artist page with upcoming and past shows.
func (h *SiteHandler) ShowArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	detail, err := h.Dir.ArtistDetail(c.Request().Context(), id)
	switch {
	case isNotFound(err):
		return echo.ErrNotFound
	case err != nil:
		h.logf(c, "artist detail %d: %v", id, err)
		detail = &service.ArtistDetail{UpcomingShows: []service.VenueShow{}, PastShows: []service.VenueShow{}}
	}
	return h.render(c, tplShowArtist, detail.Name, detail)
}

// NewArtistForm renders an empty artist form.
func (h *SiteHandler) NewArtistForm(c echo.Context) error {
	return h.render(c, tplNewArtist, "New Artist", view.ArtistFormData{})
}

// CreateArtist lists a new artist.
func (h *SiteHandler) CreateArtist(c echo.Context) error {
	f := form.ArtistFormFromValues(formValues(c))
	_, err := h.Dir.CreateArtist(c.Request().Context(), f)
	if err == nil {
		return h.redirect(c, "/", "Artist "+f.Name+" was successfully listed!")
	}
	data := view.ArtistFormData{Form: f}
	if inv, ok := invalidData(err); ok {
		h.logf(c, "invalid artist data: %v", inv)
		data.Errors = inv.Errors
		middleware.AddFlash(c, inv.Error())
	} else {
		h.logf(c, "artist could not be listed: %v", err)
		middleware.AddFlash(c, "An error occurred. Artist "+f.Name+" could not be listed.")
	}
	return h.render(c, tplNewArtist, "New Artist", data)
}

// EditArtistForm renders the artist form pre-filled from the stored record.
func (h *SiteHandler) EditArtistForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	a, err := h.Dir.Artist(c.Request().Context(), id)
	if err != nil {
		if isNotFound(err) {
			return echo.ErrNotFound
		}
		h.logf(c, "load artist %d: %v", id, err)
		return err
	}
	return h.render(c, tplEditArtist, "Edit Artist", view.ArtistFormData{ID: id, Form: form.ArtistFormFromModel(*a)})
}

// UpdateArtist overwrites an artist with the submitted values.
func (h *SiteHandler) UpdateArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	f := form.ArtistFormFromValues(formValues(c))
	_, err = h.Dir.UpdateArtist(c.Request().Context(), id, f)
	if err == nil {
		return h.redirect(c, "/artists/"+strconv.FormatUint(id, 10), "Artist "+f.Name+" was successfully updated!")
	}
	if isNotFound(err) {
		h.logf(c, "no such artist %d", id)
		return echo.ErrNotFound
	}
	data := view.ArtistFormData{ID: id, Form: f}
	if inv, ok := invalidData(err); ok {
		h.logf(c, "invalid artist data: %v", inv)
		data.Errors = inv.Errors
		middleware.AddFlash(c, inv.Error())
	} else {
		h.logf(c, "artist %d could not be updated: %v", id, err)
		middleware.AddFlash(c, "An error occurred. Artist "+f.Name+" could not be updated.")
	}
	return h.render(c, tplEditArtist, "Edit Artist", data)
}
