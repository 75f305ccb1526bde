package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/service"
	"github.com/iliyamo/fyyur/internal/view"
)

// ListVenues renders every venue grouped by city and state.  A failed
// query is logged and shows an empty list.
func (h *SiteHandler) ListVenues(c echo.Context) error {
	areas, err := h.Dir.ListVenueAreas(c.Request().Context())
	if err != nil {
		h.logf(c, "list venues: %v", err)
		areas = []service.Area{}
	}
	return h.render(c, tplVenues, "Venues", areas)
}

// SearchVenues renders the venues whose name contains search_term.
func (h *SiteHandler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	res, err := h.Dir.SearchVenues(c.Request().Context(), term)
	if err != nil {
		h.logf(c, "search venues %q: %v", term, err)
	}
	return h.render(c, tplSearchVenues, "Venues", view.SearchData{Term: term, Results: res})
}

// ShowVenue renders the venue page with its upcoming and past shows.
func (h *SiteHandler) ShowVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	detail, err := h.Dir.VenueDetail(c.Request().Context(), id)
	switch {
	case isNotFound(err):
		return echo.ErrNotFound
	case err != nil:
		h.logf(c, "venue detail %d: %v", id, err)
		detail = &service.VenueDetail{UpcomingShows: []service.ArtistShow{}, PastShows: []service.ArtistShow{}}
	}
	return h.render(c, tplShowVenue, detail.Name, detail)
}

// NewVenueForm renders an empty venue form.
func (h *SiteHandler) NewVenueForm(c echo.Context) error {
	return h.render(c, tplNewVenue, "New Venue", view.VenueFormData{})
}

// CreateVenue lists a new venue.  Success returns to the home page;
// invalid input or a storage failure redisplays the form as typed.
func (h *SiteHandler) CreateVenue(c echo.Context) error {
	f := form.VenueFormFromValues(formValues(c))
	_, err := h.Dir.CreateVenue(c.Request().Context(), f)
	if err == nil {
		return h.redirect(c, "/", "Venue "+f.Name+" was successfully listed!")
	}
	data := view.VenueFormData{Form: f}
	if inv, ok := invalidData(err); ok {
		h.logf(c, "invalid venue data: %v", inv)
		data.Errors = inv.Errors
		middleware.AddFlash(c, inv.Error())
	} else {
		h.logf(c, "venue could not be listed: %v", err)
		middleware.AddFlash(c, "An error occurred. Venue "+f.Name+" could not be listed.")
	}
	return h.render(c, tplNewVenue, "New Venue", data)
}

// EditVenueForm renders the venue form pre-filled from the stored record.
func (h *SiteHandler) EditVenueForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	v, err := h.Dir.Venue(c.Request().Context(), id)
	if err != nil {
		if isNotFound(err) {
			return echo.ErrNotFound
		}
		h.logf(c, "load venue %d: %v", id, err)
		return err
	}
	return h.render(c, tplEditVenue, "Edit Venue", view.VenueFormData{ID: id, Form: form.VenueFormFromModel(*v)})
}

// UpdateVenue overwrites a venue with the submitted values and returns to
// its page.  A rejected submission redisplays exactly what was typed.
func (h *SiteHandler) UpdateVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	f := form.VenueFormFromValues(formValues(c))
	_, err = h.Dir.UpdateVenue(c.Request().Context(), id, f)
	if err == nil {
		return h.redirect(c, "/venues/"+strconv.FormatUint(id, 10), "Venue "+f.Name+" was successfully updated!")
	}
	if isNotFound(err) {
		h.logf(c, "no such venue %d", id)
		return echo.ErrNotFound
	}
	data := view.VenueFormData{ID: id, Form: f}
	if inv, ok := invalidData(err); ok {
		h.logf(c, "invalid venue data: %v", inv)
		data.Errors = inv.Errors
		middleware.AddFlash(c, inv.Error())
	} else {
		h.logf(c, "venue %d could not be updated: %v", id, err)
		middleware.AddFlash(c, "An error occurred. Venue "+f.Name+" could not be updated.")
	}
	return h.render(c, tplEditVenue, "Edit Venue", data)
}

// DeleteVenue removes a venue and its shows, then returns to the home page.
// DELETE requests get a bare status code instead of a redirect.
func (h *SiteHandler) DeleteVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	err = h.Dir.DeleteVenue(c.Request().Context(), id)
	if isNotFound(err) {
		h.logf(c, "no such venue %d", id)
		return echo.ErrNotFound
	}
	if c.Request().Method == http.MethodDelete {
		if err != nil {
			h.logf(c, "delete venue %d: %v", id, err)
			return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
	if err != nil {
		h.logf(c, "delete venue %d: %v", id, err)
		return h.redirect(c, "/", "An error occurred. Venue could not be deleted.")
	}
	return h.redirect(c, "/", "Venue was successfully deleted.")
}
